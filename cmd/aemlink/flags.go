package main

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// AppFlags holds the command line options of one run.
type AppFlags struct {
	GlobalConfigFile string
	Archives         []string
	OutputDir        string
	JobID            string
	SubmissionName   string
	Mode             string
}

// archiveList collects a repeatable -archive flag.
type archiveList []string

func (a *archiveList) String() string {
	return strings.Join(*a, ",")
}

func (a *archiveList) Set(value string) error {
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			*a = append(*a, part)
		}
	}
	return nil
}

// ParseFlags parses args (without the program name). Positional arguments are
// treated as extra archive paths.
func ParseFlags(args []string, output io.Writer) (AppFlags, error) {
	fs := flag.NewFlagSet("aemlink", flag.ContinueOnError)
	fs.SetOutput(output)

	var archives archiveList
	globalConfigFile := fs.String("config", "", "Path to the global YAML/JSON configuration file. If not set, searches default locations.")
	globalConfigFileAlias := fs.String("c", "", "Alias for -config")
	fs.Var(&archives, "archive", "Path to a translation export archive (repeatable or comma separated)")
	fs.Var(&archives, "a", "Alias for -archive")
	outputDir := fs.String("output", "", "Report output directory (overrides config file if set)")
	outputDirAlias := fs.String("o", "", "Alias for -output")
	jobID := fs.String("job-id", "", "Translation job ID shown in the report header")
	submission := fs.String("submission", "", "Submission name shown in the report header")
	modeFlag := fs.String("mode", "", "Run mode: single or batch (overrides config file if set)")
	modeFlagAlias := fs.String("m", "", "Alias for -mode")

	if err := fs.Parse(args); err != nil {
		return AppFlags{}, err
	}

	flags := AppFlags{
		GlobalConfigFile: firstNonEmpty(*globalConfigFile, *globalConfigFileAlias),
		OutputDir:        firstNonEmpty(*outputDir, *outputDirAlias),
		JobID:            strings.TrimSpace(*jobID),
		SubmissionName:   strings.TrimSpace(*submission),
		Mode:             strings.ToLower(firstNonEmpty(*modeFlag, *modeFlagAlias)),
	}
	flags.Archives = append([]string(archives), fs.Args()...)

	if len(flags.Archives) == 0 {
		return AppFlags{}, fmt.Errorf("at least one -archive is required")
	}
	return flags, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
