package deploy

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

var linksTemplate = template.Must(template.ParseFS(templatesFS, "templates/links.rb.tmpl"))

type databaseEntry struct {
	Adapter  string `yaml:"adapter"`
	Encoding string `yaml:"encoding"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Host     string `yaml:"host"`
}

// RenderDatabaseYML renders the production database.yml for the shared config.
func RenderDatabaseYML(cfg Config, password string) ([]byte, error) {
	doc := map[string]databaseEntry{
		"production": {
			Adapter:  "mysql2",
			Encoding: "utf8",
			Database: cfg.DBName,
			Username: cfg.DBUser,
			Password: password,
			Host:     cfg.DBHost,
		},
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("render database.yml: %w", err)
	}
	return out, nil
}

func RenderLinks(cfg Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := linksTemplate.Execute(&buf, cfg); err != nil {
		return nil, fmt.Errorf("render links.rb: %w", err)
	}
	return buf.Bytes(), nil
}
