package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/parcelview/pkg/catalog"
)

// catalogCommand lists catalog items.
func (c *CLI) catalogCommand() *cobra.Command {
	var category, query string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List catalog items",
		Example: `  parcelview catalog
  parcelview catalog --category books
  parcelview catalog --search plush`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := c.newCatalog()
			if err != nil {
				return err
			}
			var filter catalog.Category
			if category != "" {
				if filter, err = catalog.ParseCategory(category); err != nil {
					return err
				}
			}

			items := cat.Items(filter)
			if query != "" {
				items = itemsInCategory(cat.Search(query), filter)
			}
			if len(items) == 0 {
				printWarning("No items found")
				return nil
			}
			fmt.Println(renderTable(
				[]string{"ID", "Category", "Name", "L × W × H cm", "Weight", "Kind"},
				catalogRows(items),
			))
			printDetail("%d items", len(items))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only list one category (english name or label)")
	cmd.Flags().StringVarP(&query, "search", "s", "", "filter by name")
	return cmd
}

func itemsInCategory(items []catalog.Item, cat catalog.Category) []catalog.Item {
	if cat == "" {
		return items
	}
	out := items[:0:0]
	for _, it := range items {
		if it.Category == cat {
			out = append(out, it)
		}
	}
	return out
}

func catalogRows(items []catalog.Item) [][]string {
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{
			strconv.Itoa(it.ID),
			it.Category.Label(),
			it.Name,
			fmt.Sprintf("%s × %s × %s", formatCm(it.LengthCm), formatCm(it.WidthCm), formatCm(it.HeightCm)),
			fmt.Sprintf("%d g", it.WeightG),
			it.Kind().String(),
		})
	}
	return rows
}
