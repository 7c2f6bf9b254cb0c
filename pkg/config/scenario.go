package config

import (
	"fmt"
	"os"

	"myGreenField/business/yield"
	"myGreenField/domain"
	"myGreenField/pkg/logger"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// LoadScenario decodes an HCL scenario file. An empty path, or a path that
// does not exist, yields the built-in irrigation field. Rows are checked for
// shape by yield.NewGenerator, not here.
//
//	noise_std = 0.05
//	actions   = ["Low irrigation", "Moderate irrigation", "High irrigation"]
//	context "Plot A" { base_means = [0.5, 0.7, 0.9] }
func LoadScenario(path string) (domain.Scenario, error) {
	if path == "" {
		return yield.DefaultScenario(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Warn("scenario_not_found", "path", path, "fallback", "built-in")
		return yield.DefaultScenario(), nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return domain.Scenario{}, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var s domain.Scenario
	diags = gohcl.DecodeBody(file.Body, nil, &s)
	if diags.HasErrors() {
		return domain.Scenario{}, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	return s, nil
}
