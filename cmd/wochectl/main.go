// Command wochectl inspects and validates the course curriculum and operates
// the submission store.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/uam-aleman/wochenkontext/internal/curriculum"
)

type rootOptions struct {
	curriculumPath string
	maxWeek        int
}

func (o *rootOptions) registry() (*curriculum.Registry, error) {
	fsys := curriculum.Weeks()
	if o.curriculumPath != "" {
		fsys = os.DirFS(o.curriculumPath)
	}
	return curriculum.NewRegistry(fsys,
		curriculum.WithMaxWeek(o.maxWeek),
		curriculum.WithDuplicatePolicy(curriculum.DuplicateReject),
	)
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "wochectl",
		Short:         "Inspect week contexts and review scopes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.curriculumPath, "curriculum", "", "directory of week YAML files (default: embedded weeks)")
	root.PersistentFlags().IntVar(&opts.maxWeek, "max-week", curriculum.DefaultMaxWeek, "highest valid week number")

	root.AddCommand(
		newCoursesCmd(opts),
		newWeeksCmd(opts),
		newShowCmd(opts),
		newValidateCmd(),
		newPayloadCmd(opts),
		newExportCmd(opts),
		newSubmissionsCmd(),
		newCacheCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
