package render

import (
	"fmt"
	"strings"

	"go.yaml.in/yaml/v3"
)

const frontmatterDelimiter = "---"

// frontmatter is the optional YAML header a rendered template may carry to
// control output placement.
type frontmatter struct {
	// To is the output path relative to the render destination.
	To string `yaml:"to"`
	// SkipExists leaves an existing output file untouched.
	SkipExists bool `yaml:"skip_exists"`
	// Message is printed after the file is written.
	Message string `yaml:"message"`
}

// splitFrontmatter separates a rendered document into its frontmatter (if
// any) and body. A document opens frontmatter with a "---" line and closes
// it with the next one; anything else is all body.
func splitFrontmatter(rendered string) (*frontmatter, string, error) {
	normalized := strings.ReplaceAll(rendered, "\r\n", "\n")
	if !strings.HasPrefix(normalized, frontmatterDelimiter+"\n") {
		return nil, rendered, nil
	}

	rest := normalized[len(frontmatterDelimiter)+1:]
	end := strings.Index(rest, "\n"+frontmatterDelimiter+"\n")
	if end < 0 {
		// An opening delimiter with no closing one is all body.
		return nil, rendered, nil
	}

	var fm frontmatter
	if err := yaml.Unmarshal([]byte(rest[:end]), &fm); err != nil {
		return nil, "", fmt.Errorf("parsing template frontmatter: %w", err)
	}

	body := rest[end+len(frontmatterDelimiter)+2:]
	return &fm, body, nil
}
