package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/tab"
	"github.com/spf13/cobra"
)

var educationCmd = &cobra.Command{
	Use:   "education",
	Short: "Edit the education section",
}

var educationAddCmd = &cobra.Command{
	Use:   "add <resume-id>",
	Short: "Add an education entry",
	Long:  "Adds an entry at the end of the education section. Name and major are required.",
	Args:  cobra.ExactArgs(1),
	RunE:  runEducationAdd,
}

var (
	addName        string
	addMajor       string
	addGrade       string
	addStart       string
	addEnd         string
	addDescription string
	addDisabled    bool
)

func init() {
	flags := educationAddCmd.Flags()
	flags.StringVar(&addName, "name", "", "School name (required)")
	flags.StringVar(&addMajor, "major", "", "Degree or major (required)")
	flags.StringVar(&addGrade, "grade", "", "Grade, e.g. 7.2 CGPA")
	flags.StringVar(&addStart, "start", "", "Start date, e.g. March 2018")
	flags.StringVar(&addEnd, "end", "", "End date, e.g. May 2020")
	flags.StringVar(&addDescription, "description", "", "Projects or special classes")
	flags.BoolVar(&addDisabled, "disabled", false, "Add the entry hidden from the rendered resume")

	educationCmd.AddCommand(
		educationAddCmd,
		indexCommand("delete", "Delete the education entry at index", (*tab.Item).Delete),
		indexCommand("move-up", "Move the education entry at index up", (*tab.Item).MoveUp),
		indexCommand("move-down", "Move the education entry at index down", (*tab.Item).MoveDown),
	)
	rootCmd.AddCommand(educationCmd)
}

func runEducationAdd(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		st, err := a.open(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		panel := tab.NewEducationTab(st).AddPanel()
		values := map[resume.EducationField]any{
			resume.EducationName:        addName,
			resume.EducationMajor:       addMajor,
			resume.EducationGrade:       addGrade,
			resume.EducationStart:       addStart,
			resume.EducationEnd:         addEnd,
			resume.EducationDescription: addDescription,
			resume.EducationEnable:      !addDisabled,
		}
		for field, v := range values {
			if err := panel.SetField(field, v); err != nil {
				return err
			}
		}
		id := panel.Draft().ID
		if err := panel.Submit(cmd.Context()); err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), id)
		return err
	})
}

// indexCommand builds a command that applies op to one entry editor.
func indexCommand(use, short string, op func(*tab.Item, context.Context) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <resume-id> <index>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("index must be a number: %q", args[1])
			}
			return withApp(cmd.Context(), func(a *app) error {
				st, err := a.open(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				item, err := tab.NewEducationTab(st).Item(index)
				if err != nil {
					return err
				}
				return op(item, cmd.Context())
			})
		},
	}
}
