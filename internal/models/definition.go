package models

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// OptionDefinition is one selectable answer in the survey definition file.
type OptionDefinition struct {
	Label  string  `yaml:"label"`
	Points float64 `yaml:"points"`
}

// QuestionDefinition is a survey item as declared in the definition file.
type QuestionDefinition struct {
	Text      string             `yaml:"text"`
	MaxPoints float64            `yaml:"max_points"`
	Options   []OptionDefinition `yaml:"options"`
}

// PillarDefinition groups questions under one weighted scoring dimension.
type PillarDefinition struct {
	Name        string               `yaml:"name"`
	Description string               `yaml:"description,omitempty"`
	MaxPoints   float64              `yaml:"max_points"`
	Weight      float64              `yaml:"weight"`
	Questions   []QuestionDefinition `yaml:"questions"`
}

// SurveyDefinition holds the full seedable survey structure.
type SurveyDefinition struct {
	Pillars []PillarDefinition `yaml:"pillars"`
}

// LoadSurveyDefinition reads and parses the survey definition YAML file.
func LoadSurveyDefinition(path string) (*SurveyDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read survey definition: %w", err)
	}

	var def SurveyDefinition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to unmarshal survey definition YAML: %w", err)
	}

	return &def, nil
}
