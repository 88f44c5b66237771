package certificates

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const certTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Certificate of Completion</title></head>
<body>
  <h1>Certificate of Completion</h1>
  <p>This certifies that <strong>{{.StudentName}}</strong></p>
  <p>has successfully completed the course</p>
  <h2>{{.CourseTitle}}</h2>
  <p>taught by {{.InstructorName}}</p>
  <p>Issued on {{.IssuedAt.Format "January 2, 2006"}}</p>
</body>
</html>
`

// Certificate holds the data rendered into an issued certificate.
type Certificate struct {
	StudentName    string
	CourseTitle    string
	InstructorName string
	IssuedAt       time.Time
}

// Generator renders completion certificates into the upload directory so
// they are served the same way as course media.
type Generator struct {
	basePath string
	baseURL  string
	tmpl     *template.Template
}

// NewGenerator creates a certificate generator writing under basePath
func NewGenerator(basePath, baseURL string) (*Generator, error) {
	dir := filepath.Join(basePath, "certificates")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create certificates directory: %w", err)
	}

	tmpl, err := template.New("certificate").Parse(certTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse certificate template: %w", err)
	}

	return &Generator{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		tmpl:     tmpl,
	}, nil
}

// Issue renders a certificate and returns its accessible path
func (g *Generator) Issue(cert Certificate) (string, error) {
	name := uuid.New().String() + ".html"
	fullPath := filepath.Join(g.basePath, "certificates", name)

	f, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create certificate file: %w", err)
	}
	defer f.Close()

	if err := g.tmpl.Execute(f, cert); err != nil {
		return "", fmt.Errorf("failed to render certificate: %w", err)
	}

	return g.baseURL + "/certificates/" + name, nil
}
