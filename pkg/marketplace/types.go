// Package marketplace assembles skills into distributable plugins, category
// bundles, and a marketplace manifest. A plugin wraps one skill together
// with a plugin.json manifest, generated slash-command markdown, and a
// domain-expert agent definition; a bundle packages several related skills
// under one manifest; the marketplace manifest lists everything for
// consumption by a plugin-aware client.
package marketplace

// Directory and file layout of a generated plugin tree.
const (
	IndividualSubdir = "individual"
	BundlesSubdir    = "bundles"

	manifestSubdir  = ".claude-plugin"
	manifestFile    = "plugin.json"
	marketplaceFile = "marketplace.json"

	skillsSubdir   = "skills"
	commandsSubdir = "commands"
	agentsSubdir   = "agents"
)

// Author is the normalized plugin author field
type Author struct {
	Name  string `json:"name" mapstructure:"name"`
	Email string `json:"email,omitempty" mapstructure:"email"`
}

// Manifest is the plugin.json schema written for individual and bundle plugins
type Manifest struct {
	Name        string   `json:"name"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Author      Author   `json:"author"`
	License     string   `json:"license,omitempty"`
	Homepage    string   `json:"homepage,omitempty"`
	Repository  string   `json:"repository,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
	Category    string   `json:"category,omitempty"`
	Bundle      bool     `json:"bundle,omitempty"`
	Includes    []string `json:"includes,omitempty"`
	Skills      string   `json:"skills,omitempty"`
	Commands    []string `json:"commands,omitempty"`
	Agents      []string `json:"agents,omitempty"`
}

// Entry is one plugin listing inside marketplace.json
type Entry struct {
	Name        string   `json:"name"`
	Source      string   `json:"source"`
	Version     string   `json:"version"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	Bundle      bool     `json:"bundle,omitempty"`
	Includes    []string `json:"includes,omitempty"`
	Author      string   `json:"author"`
	License     string   `json:"license"`
}

// MarketplaceManifest is the top-level marketplace.json schema
type MarketplaceManifest struct {
	Name     string              `json:"name"`
	Owner    Owner               `json:"owner"`
	Metadata MarketplaceMetadata `json:"metadata"`
	Plugins  []Entry             `json:"plugins"`
}

// Owner identifies who publishes the marketplace
type Owner struct {
	Name string `json:"name" mapstructure:"name"`
	URL  string `json:"url,omitempty" mapstructure:"url"`
}

// MarketplaceMetadata describes the marketplace as a whole
type MarketplaceMetadata struct {
	Description string `json:"description" mapstructure:"description"`
	Version     string `json:"version" mapstructure:"version"`
	PluginRoot  string `json:"pluginRoot" mapstructure:"plugin_root"`
	Homepage    string `json:"homepage,omitempty" mapstructure:"homepage"`
	Repository  string `json:"repository,omitempty" mapstructure:"repository"`
}
