package marketplace

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/pkg/errors"
)

// specialTitles maps skill names whose display titles can't be derived by
// simple title-casing
var specialTitles = map[string]string{
	"threejs-webgl":                "Three.js WebGL",
	"gsap-scrolltrigger":           "GSAP ScrollTrigger",
	"react-three-fiber":            "React Three Fiber",
	"motion-framer":                "Framer Motion",
	"babylonjs-engine":             "Babylon.js",
	"aframe-webxr":                 "A-Frame WebXR",
	"playcanvas-engine":            "PlayCanvas",
	"pixijs-2d":                    "PixiJS 2D",
	"locomotive-scroll":            "Locomotive Scroll",
	"barba-js":                     "Barba.js",
	"react-spring-physics":         "React Spring",
	"animejs":                      "Anime.js",
	"lottie-animations":            "Lottie",
	"blender-web-pipeline":         "Blender Web Pipeline",
	"spline-interactive":           "Spline",
	"rive-interactive":             "Rive",
	"substance-3d-texturing":       "Substance 3D",
	"animated-component-libraries": "Magic UI & React Bits",
}

// skillTitle formats a skill name as a display title, e.g.
// "scroll-reveal-libraries" -> "Scroll Reveal Libraries"
func skillTitle(name string) string {
	if title, ok := specialTitles[name]; ok {
		return title
	}

	words := strings.Split(name, "-")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

const scriptCommandTemplate = `# /{{.SkillName}}-{{.Command}}

{{.Title}} - {{.CommandTitle}}

## Description

Executes the {{.Command}} script for {{.Title}}.

## Usage

` + "```bash" + `
/{{.SkillName}}-{{.Command}}
` + "```" + `

## Implementation

This command runs the ` + "`{{.Script}}`" + ` script from the {{.Title}} skill, which
provides automated assistance for {{.CommandWords}}.

## Notes

- This command leverages the skill's built-in automation scripts
- For interactive mode, the script will prompt for required information
- Check the skill documentation for detailed script usage
`

const setupCommandTemplate = `# /{{.SkillName}}-setup

Initialize {{.Title}} project

## Description

Provides setup guidance and boilerplate code for starting a new {{.Title}} project.

## Usage

` + "```bash" + `
/{{.SkillName}}-setup
` + "```" + `

## What it does

- Analyzes your project structure
- Provides installation instructions
- Generates boilerplate code
- Offers configuration guidance
`

const helpCommandTemplate = `# /{{.SkillName}}-help

Get help with {{.Title}}

## Description

Provides comprehensive help and documentation for {{.Title}}.

## Usage

` + "```bash" + `
/{{.SkillName}}-help
` + "```" + `

## What it does

- Shows common patterns and examples
- Links to official documentation
- Provides troubleshooting guidance
- Explains key concepts
`

const graphicsAgentTemplate = `# {{.Title}} Architect

## Role

Expert 3D/graphics architect specializing in {{.Title}} scene design,
optimization, and best practices.

## Expertise

- Scene architecture and organization
- Performance optimization techniques
- Material and lighting setup
- Asset management and loading strategies
- Rendering optimization

## When to use

Activate this agent when working on:
- Complex 3D scene architecture
- Performance optimization challenges
- Advanced rendering techniques
- Large-scale graphics applications

## Approach

1. Analyze scene requirements and constraints
2. Design optimal architecture for performance
3. Implement best practices from the {{.Title}} ecosystem
4. Optimize for target platforms and devices
`

const animationAgentTemplate = `# {{.Title}} Animation Choreographer

## Role

Expert animation choreographer specializing in {{.Title}} animation design,
timing, and orchestration.

## Expertise

- Animation timing and easing
- Timeline sequencing
- Performance-optimized animations
- Scroll-driven animation design

## When to use

Activate this agent when working on:
- Complex animation sequences
- Multi-element choreography
- Scroll-triggered animations
- Animation performance optimization

## Approach

1. Understand animation goals and user experience
2. Design animation timing and sequencing
3. Implement using {{.Title}} best practices
4. Optimize for smooth 60fps performance
`

const authoringAgentTemplate = `# {{.Title}} Pipeline Specialist

## Role

Expert pipeline specialist for {{.Title}} workflows, asset optimization, and
web integration.

## Expertise

- Asset export and optimization
- Web-ready format conversion
- Texture and material optimization
- Automated pipeline workflows

## When to use

Activate this agent when working on:
- Asset export pipelines
- Batch processing workflows
- Optimization for web delivery
- Automated quality checks

## Approach

1. Analyze asset requirements and constraints
2. Design optimal export pipeline
3. Optimize for web performance
4. Validate output quality
`

const genericAgentTemplate = `# {{.Title}} Specialist

## Role

Expert specialist in {{.Title}} implementation, patterns, and best practices.

## Expertise

- {{.Title}} core concepts and patterns
- Integration with other libraries and frameworks
- Performance optimization
- Common pitfalls and solutions

## When to use

Activate this agent when working on:
- {{.Title}} implementation challenges
- Integration with other technologies
- Troubleshooting and debugging
- Architecture decisions

## Approach

1. Understand project requirements and context
2. Apply {{.Title}} best practices
3. Recommend optimal implementation patterns
4. Provide detailed guidance and examples
`

const integrationAgentTemplate = `# {{.Title}} Integration Specialist

## Role

Expert integration specialist for combining {{.Title}} technologies into
cohesive applications.

## Expertise

- Cross-library integration patterns
- Technology stack orchestration
- Performance optimization across libraries
- Unified architecture design

## Bundle Contents

This bundle includes:
{{range .Skills}}- {{.}}
{{end}}
## When to use

Activate this agent when working on:
- Projects using multiple libraries from this bundle
- Cross-library integration challenges
- Architecture decisions spanning multiple technologies

## Approach

1. Understand project requirements across all technologies
2. Design cohesive architecture leveraging each library's strengths
3. Implement integration patterns proven for this stack
4. Optimize for overall system performance
`

func renderTemplate(name, text string, data interface{}) ([]byte, error) {
	tmpl, err := template.New(name).Parse(text)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s template", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrapf(err, "failed to render %s template", name)
	}

	return buf.Bytes(), nil
}
