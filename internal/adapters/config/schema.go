package config

// Kindredfile represents the structure of the kindred.yaml configuration file.
type Kindredfile struct {
	Version   string       `yaml:"version"`
	Runtime   string       `yaml:"runtime"`
	Roots     []string     `yaml:"roots"`
	Exclude   []string     `yaml:"exclude"`
	Toolchain ToolchainDTO `yaml:"toolchain"`
	State     string       `yaml:"state"`
}

// ToolchainDTO holds toolchain settings that go env cannot report.
type ToolchainDTO struct {
	Opt   string   `yaml:"opt"`
	Flags []string `yaml:"flags"`
}
