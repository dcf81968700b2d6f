// Package snippets provides named starter-code templates for common
// creative-web libraries. Each snippet renders with sensible defaults that
// callers can override per argument.
package snippets

import (
	"bytes"
	"sort"
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

// Snippet is one registered starter template
type Snippet struct {
	Name        string
	Description string
	Defaults    map[string]string
	text        string
}

var registry = map[string]*Snippet{
	"threejs-scene": {
		Name:        "threejs-scene",
		Description: "Three.js scene with renderer, camera, and resize handling",
		Defaults:    map[string]string{"Background": "0x0a0a0a", "Fov": "75"},
		text:        threejsSceneText,
	},
	"r3f-component": {
		Name:        "r3f-component",
		Description: "React Three Fiber canvas component",
		Defaults:    map[string]string{"Component": "Scene"},
		text:        r3fComponentText,
	},
	"gsap-timeline": {
		Name:        "gsap-timeline",
		Description: "GSAP timeline with staggered entrance animation",
		Defaults:    map[string]string{"Selector": ".item", "Duration": "0.8"},
		text:        gsapTimelineText,
	},
	"gsap-scrolltrigger": {
		Name:        "gsap-scrolltrigger",
		Description: "GSAP ScrollTrigger scrubbed section animation",
		Defaults:    map[string]string{"Trigger": ".section", "Selector": ".panel"},
		text:        gsapScrollTriggerText,
	},
	"pixi-app": {
		Name:        "pixi-app",
		Description: "PixiJS application with a ticker loop",
		Defaults:    map[string]string{"Background": "0x1a1a2e"},
		text:        pixiAppText,
	},
	"locomotive-config": {
		Name:        "locomotive-config",
		Description: "Locomotive Scroll smooth-scrolling setup",
		Defaults:    map[string]string{"Multiplier": "1"},
		text:        locomotiveConfigText,
	},
	"barba-transition": {
		Name:        "barba-transition",
		Description: "Barba.js page transition with fade",
		Defaults:    map[string]string{"Duration": "0.5"},
		text:        barbaTransitionText,
	},
	"framer-variants": {
		Name:        "framer-variants",
		Description: "Framer Motion variants with staggered children",
		Defaults:    map[string]string{"Stagger": "0.1"},
		text:        framerVariantsText,
	},
}

// Names lists every registered snippet name, sorted
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get returns a registered snippet
func Get(name string) (*Snippet, error) {
	snippet, ok := registry[name]
	if !ok {
		return nil, errors.Errorf("unknown snippet '%s' (available: %s)", name, strings.Join(Names(), ", "))
	}
	return snippet, nil
}

// Render produces the snippet's source with args merged over its defaults
func Render(name string, args map[string]string) (string, error) {
	snippet, err := Get(name)
	if err != nil {
		return "", err
	}

	data := make(map[string]string, len(snippet.Defaults)+len(args))
	for k, v := range snippet.Defaults {
		data[k] = v
	}
	for k, v := range args {
		data[k] = v
	}

	tmpl, err := template.New(name).Option("missingkey=error").Parse(snippet.text)
	if err != nil {
		return "", errors.Wrapf(err, "failed to parse snippet %s", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", errors.Wrapf(err, "failed to render snippet %s", name)
	}

	return buf.String(), nil
}
