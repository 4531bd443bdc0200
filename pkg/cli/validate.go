package cli

import (
	"context"
	"fmt"
	"os"

	githubinfra "github.com/m-mizutani/approval-checker/pkg/infra/github"
	"github.com/m-mizutani/approval-checker/pkg/usecase"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"v"},
		Usage:     "Validate local policy files",
		ArgsUsage: "FILE...",
		Action: func(ctx context.Context, c *cli.Command) error {
			files := c.Args().Slice()
			if len(files) == 0 {
				return goerr.New("no policy file given")
			}

			var failed int
			for _, file := range files {
				if err := validatePolicyFile(file); err != nil {
					failed++
					fmt.Fprintf(c.Root().ErrWriter, "%s: %v\n", file, err)
					continue
				}
				fmt.Fprintf(c.Root().Writer, "%s: OK\n", file)
			}

			if failed > 0 {
				return goerr.New("invalid policy files", goerr.V("failed", failed), goerr.V("total", len(files)))
			}
			return nil
		},
	}
}

func validatePolicyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return goerr.Wrap(err, "failed to read policy file")
	}

	doc, err := githubinfra.DecodePolicy(path, data)
	if err != nil {
		return err
	}

	_, err = usecase.ValidatePolicy(doc)
	return err
}
