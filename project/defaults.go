// ABOUTME: Built-in sample files loaded into every new project.
package project

// DefaultFiles returns the four sample files a fresh project starts with.
func DefaultFiles() []File {
	return []File{
		{Name: "index.html", Content: `<div class="hello">Welcome to stack-rush!</div>`, Kind: KindMarkup},
		{Name: "styles.css", Content: ".hello { color: blue; }", Kind: KindStyle},
		{Name: "script.js", Content: `console.log("stack-rush from JS!");`, Kind: KindScript},
		{Name: "README.md", Content: "\n\n# Export ZIP for a ready-to-deploy website!", Kind: KindDocument},
	}
}

// NewDefault creates a project holding the sample files with index.html active.
func NewDefault() *Project {
	return New(DefaultFiles()...)
}
