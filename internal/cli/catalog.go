package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kazumasamatsumoto/algo/internal/algorithm"
	"github.com/spf13/cobra"
	"github.com/yildizm/go-termfmt"
	"gopkg.in/yaml.v3"
)

func newListCommand() *cobra.Command {
	var (
		category string
		format   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the available algorithms",
		Long: `List every algorithm grouped by category with its tag and time complexity.
The tag is what run, compare and explain accept.`,
		Example: `  algo list
  algo list --category graph
  algo list --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			categories, err := selectCategories(category)
			if err != nil {
				return err
			}

			byCategory := algorithm.ByCategory()
			var details []algorithm.Details
			for _, c := range categories {
				for _, kind := range byCategory[c] {
					d, _ := algorithm.Info(kind)
					details = append(details, d)
				}
			}

			out := cmd.OutOrStdout()
			switch format {
			case "text":
				current := algorithm.Category("")
				for _, d := range details {
					if d.Category != current {
						if current != "" {
							fmt.Fprintln(out)
						}
						current = d.Category
						fmt.Fprintf(out, "%s %s\n", GetCategoryEmoji(current), strings.ToUpper(string(current)))
					}
					fmt.Fprintf(out, "  %-22s %-24s %s\n", d.Kind, d.Name, d.TimeComplexity)
				}
			case "json":
				data, err := json.MarshalIndent(details, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal algorithms to JSON: %w", err)
				}
				fmt.Fprintln(out, string(data))
			case "yaml":
				data, err := yaml.Marshal(details)
				if err != nil {
					return fmt.Errorf("failed to marshal algorithms to YAML: %w", err)
				}
				fmt.Fprint(out, string(data))
			default:
				return fmt.Errorf("unsupported format: %s (use text, json or yaml)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only list one category (sorting, search, graph, dynamic, greedy, numerical)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format (text, json, yaml)")

	return cmd
}

func newInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info <algorithm>",
		Short: "Describe one algorithm",
		Long:  "Show the category, complexity and a short description of an algorithm.",
		Example: `  algo info quick-sort
  algo info dijkstra`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := algorithm.ParseKind(args[0])
			if err != nil {
				return err
			}
			d, _ := algorithm.Info(kind)

			opts := termfmt.DefaultOptions()
			opts.Color = useColor()
			opts.Emoji = !isEmojiDisabled()

			items := []termfmt.TreeItem{
				{Label: "Tag", Value: string(d.Kind)},
				{Label: "Category", Value: GetCategoryEmoji(d.Category) + " " + string(d.Category)},
				{Label: "Complexity", Children: []termfmt.TreeItem{
					{Label: "Time", Value: d.TimeComplexity},
					{Label: "Space", Value: d.SpaceComplexity, Last: true},
				}},
				{Label: "Description", Value: d.Description, Last: true},
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, d.Name)
			fmt.Fprint(out, termfmt.TreeViewWithOptions(items, opts))
			return nil
		},
	}
}

// selectCategories turns the --category flag into the categories to show
func selectCategories(name string) ([]algorithm.Category, error) {
	if name == "" {
		return algorithm.Categories, nil
	}
	for _, c := range algorithm.Categories {
		if string(c) == strings.ToLower(name) {
			return []algorithm.Category{c}, nil
		}
	}

	names := make([]string, len(algorithm.Categories))
	for i, c := range algorithm.Categories {
		names[i] = string(c)
	}
	return nil, fmt.Errorf("unknown category: %s (must be one of: %s)", name, strings.Join(names, ", "))
}
