package main

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/jonathan/resume-builder/internal/docpath"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/resume"
	"github.com/jonathan/resume-builder/internal/store"
	"github.com/jonathan/resume-builder/internal/tab"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Create an empty resume and print its id",
	Args:  cobra.NoArgs,
	RunE:  runNew,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored resumes",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var showCmd = &cobra.Command{
	Use:   "show <resume-id>",
	Short: "Show the education tab of a resume",
	Long:  "Renders the education tab. With --json the whole document is printed instead.",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

var getCmd = &cobra.Command{
	Use:   "get <resume-id> <expr>",
	Short: "Evaluate an expression against a resume",
	Long:  "Evaluates an expression such as education.items[0].major or len(education.items) and prints the result as JSON.",
	Args:  cobra.ExactArgs(2),
	RunE:  runGet,
}

var setCmd = &cobra.Command{
	Use:   "set <resume-id> <path> <value>",
	Short: "Set the value at a path",
	Long:  "Sets one field. The value is parsed as JSON when possible and used as a plain string otherwise.",
	Args:  cobra.ExactArgs(3),
	RunE:  runSet,
}

var (
	showJSON   bool
	showExpand []int
)

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the document as JSON")
	showCmd.Flags().IntSliceVar(&showExpand, "expand", nil, "Entry indexes to show expanded")

	rootCmd.AddCommand(newCmd, listCmd, showCmd, getCmd, setCmd)
}

func runNew(cmd *cobra.Command, _ []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		st, err := a.manager().Create(cmd.Context())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), st.State().ID)
		return err
	})
}

func runList(cmd *cobra.Command, _ []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		l, ok := a.repo.(lister)
		if !ok {
			return fmt.Errorf("storage %q cannot list resumes", a.cfg.Storage)
		}
		ids, err := l.List(cmd.Context())
		if err != nil {
			return err
		}
		for _, id := range ids {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), id); err != nil {
				return err
			}
		}
		return nil
	})
}

func runShow(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		st, err := a.open(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if showJSON {
			return printJSON(cmd, st.State())
		}

		et := tab.NewEducationTab(st)
		for _, i := range showExpand {
			item, err := et.Item(i)
			if err != nil {
				return err
			}
			if !item.IsOpen() {
				item.Toggle()
			}
		}
		observability.NewPrinter(cmd.OutOrStdout()).PrintEducationTab(et.View())
		return nil
	})
}

func runGet(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		st, err := a.open(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		result, err := docpath.Eval(st.State(), args[1])
		if err != nil {
			return err
		}
		return printJSON(cmd, result)
	})
}

func runSet(cmd *cobra.Command, args []string) error {
	return withApp(cmd.Context(), func(a *app) error {
		st, err := a.open(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return store.SetField(cmd.Context(), st, args[1], valueFor(st.State(), args[1], args[2]))
	})
}

// valueFor interprets raw for the field at path. Text fields take raw as
// typed, so `3.8` stays "3.8"; a quoted JSON string is unquoted. Other
// targets, and paths that do not exist yet, go through parseValue.
func valueFor(doc *resume.Document, path, raw string) any {
	target, err := docpath.Lookup(doc, path)
	if err != nil || target.Kind() != reflect.String {
		return parseValue(raw)
	}
	var s string
	if err := json.Unmarshal([]byte(raw), &s); err == nil {
		return s
	}
	return raw
}

// parseValue reads a JSON literal, falling back to the raw string.
func parseValue(raw string) any {
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		return raw
	}
	return v
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
