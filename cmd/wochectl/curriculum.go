package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/uam-aleman/wochenkontext/internal/curriculum"
	"github.com/uam-aleman/wochenkontext/internal/review"
	"github.com/uam-aleman/wochenkontext/internal/scope"
)

func newCoursesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "courses",
		Short: "List courses with registered weeks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := opts.registry()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "COURSE\tSLUG\tTITLE\tWEEKS")
			for _, level := range reg.ListCourses() {
				rm, _ := reg.Roadmap(string(level))
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", level, curriculum.CourseSlug(level), rm.Title, joinInts(reg.ListWeeks(string(level))))
			}
			return tw.Flush()
		},
	}
}

func newWeeksCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "weeks <course>",
		Short: "List the roadmap of a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := opts.registry()
			if err != nil {
				return err
			}
			rm, ok := reg.Roadmap(args[0])
			if !ok {
				return fmt.Errorf("unknown course %q", args[0])
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "WEEK\tACTIVE\tTITLE")
			for _, e := range rm.Weeks {
				active := "-"
				if e.Active {
					active = "yes"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Slug, active, e.Title)
			}
			return tw.Flush()
		},
	}
}

func resolveArgs(reg *curriculum.Registry, course, week string) (scope.WeekContext, error) {
	n, err := curriculum.ParseWeek(week)
	if err != nil {
		return scope.WeekContext{}, err
	}
	if err := reg.AssertValid(course, n); err != nil {
		return scope.WeekContext{}, err
	}
	c, _ := reg.Resolve(course, n)
	return c, nil
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <course> <week>",
		Short: "Print a week context as YAML",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := opts.registry()
			if err != nil {
				return err
			}
			c, err := resolveArgs(reg, args[0], args[1])
			if err != nil {
				return err
			}
			if src, ok := reg.Source(args[0], c.Week); ok {
				fmt.Fprintf(cmd.OutOrStdout(), "# source: %s\n", src)
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(c); err != nil {
				return fmt.Errorf("encoding week context: %w", err)
			}
			return enc.Close()
		},
	}
}

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file...>",
		Short: "Validate week context files and print every issue",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					fmt.Fprintf(out, "FAIL %s\n  %v\n", path, err)
					failed++
					continue
				}
				c, err := scope.ParseNamed(path, data)
				if err == nil {
					fmt.Fprintf(out, "ok   %s (%s)\n", path, c.Key())
					continue
				}
				failed++
				fmt.Fprintf(out, "FAIL %s\n", path)
				var ve *scope.ValidationError
				if errors.As(err, &ve) {
					for _, is := range ve.Issues {
						fmt.Fprintf(out, "  %s\n", is)
					}
				} else {
					fmt.Fprintf(out, "  %v\n", err)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files invalid", failed, len(args))
			}
			return nil
		},
	}
}

func newPayloadCmd(opts *rootOptions) *cobra.Command {
	var name, text, textFile string
	var prompt bool

	cmd := &cobra.Command{
		Use:   "payload <course> <week>",
		Short: "Print the instruction payload for a submission",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if textFile != "" {
				data, err := os.ReadFile(textFile)
				if err != nil {
					return err
				}
				text = string(data)
			}

			reg, err := opts.registry()
			if err != nil {
				return err
			}
			c, err := resolveArgs(reg, args[0], args[1])
			if err != nil {
				return err
			}
			p, err := review.BuildPayload(c, text, name)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if prompt {
				system, _, err := review.Prompt(p)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, system)
				return err
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(p)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "student name")
	cmd.Flags().StringVar(&text, "text", "", "submission text")
	cmd.Flags().StringVar(&textFile, "text-file", "", "read the submission text from a file")
	cmd.Flags().BoolVar(&prompt, "prompt", false, "print the rendered system prompt instead of JSON")
	cmd.MarkFlagsMutuallyExclusive("text", "text-file")
	return cmd
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprint(n)
	}
	return strings.Join(parts, ",")
}
