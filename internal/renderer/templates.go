package renderer

import "github.com/dpshade/pocket-composer/internal/models"

// Templates see resolved values: strings for text fields, bool for flags, int for counts.
// Optional clauses are wrapped in {{- with trim .field}} so an empty field drops its whole line.
var promptTemplates = map[models.Category]string{
	models.CategoryArchitecture: `{{.quality}} architectural visualization.
Style: {{lower .style}} architecture.
Materials: {{.material}} in {{.color}}.
Lighting: {{.lighting}} with natural light effects.
{{- with trim .details}}
Details: {{.}}.
{{- end}}
Render: Photorealistic, clean lines, focus on material quality and textures.
Resolution: 4K, professional presentation.`,

	models.CategoryFacade: `Photorealistic 3D visualization of {{article .style}} house facade.
Architectural style: {{.style}} architecture.
Facade: {{.material}} surface in {{.color}}.
Door: {{.door_material}} door in {{.door_color}}.
Windows: {{.windows}} {{.window_style}} {{plural .windows "window" "windows"}}.
Lighting: {{.lighting}} with natural light effects.
Render quality: Highly detailed textures, 4K resolution.
Perspective: Front view, professional architectural rendering.
Style: Photorealistic, clean lines, focused on material quality.
{{- with trim .features}}
Additional elements: {{.}}.
{{- end}}`,

	models.CategoryImageDescription: `Image description for {{.subject}}.
Photo style: {{.style}} photography.
Composition: {{.composition}}.
Light: {{.lighting}}.
Camera: {{.camera}} shot.
{{- with trim .mood}}
Mood: {{.}}.
{{- end}}
{{- with trim .details}}
Details: {{.}}.
{{- end}}
Technical: Sharp focus, balanced exposure, natural colors.`,

	models.CategorySourceCode: `Write {{lower .complexity}} {{.language}} code.
Task: {{.task}}.
Requirements: {{.requirements}}.
Framework: {{.framework}}.
Programming style: {{lower .style}} {{if .comments}}including detailed comments{{end}} {{if .tests}}with unit tests{{end}}.
Output: Complete, runnable code with explanation.
Best practices: Clean code, efficient algorithms, solid error handling.`,

	models.CategoryAIArt: `{{.subject}}, {{lower .style}}{{with trim .artist}} in the style of {{.}}{{end}}.
Color palette: {{.colors}}.
Composition: {{.composition}}.
Detail level: {{.details}}.
Style: {{lower .style}}, atmospheric, expressive.
{{- with trim .parameters}}
{{.}}
{{- end}}`,

	models.CategoryMarketing: `Marketing copy for {{.product}}.
Target audience: {{.audience}}.
Goal: {{lower .goal}}.
Tone: {{lower .tone}}.
Platform: {{.platform}}.
{{- with trim .keywords}}
Keywords: {{.}}.
{{- end}}
{{- with trim .cta}}
Call to action: {{.}}.
{{- end}}
Style: Persuasive, clear, action-oriented, adding value for the customer.`,
}
