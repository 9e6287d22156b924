package main

import (
	"flag"
	"fmt"
	"os"

	"bitbucket.org/mmdatafocus/gastrocost_backend/workflow"
)

// workbook-check parses a workbook the way the server would and prints the
// resulting diagnostics, so an operator can vet a file before uploading it.
func main() {
	strict := flag.Bool("strict", false, "exit nonzero when any diagnostic is reported")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: workbook-check [-strict] <file.xlsx>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open %s: %v\n", path, err)
		os.Exit(1)
	}
	defer f.Close()

	data, err := workflow.ReadWorkbook(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot parse %s: %v\n", path, err)
		os.Exit(1)
	}

	data, diags := workflow.Recalc(data)
	kpi := workflow.ComputeKPI(data)

	fmt.Printf("articles: %d (%d with issues)\n", kpi.InventoryCount, kpi.InventoryIssues)
	fmt.Printf("recipe lines: %d (%d with issues)\n", kpi.RecipeLineCount, kpi.RecipeIssues)
	fmt.Printf("dishes: %d (%d with issues)\n", kpi.DishCount, kpi.DishIssues)

	for _, d := range diags {
		ref := d.Dish
		if d.Ingredient != "" {
			if ref != "" {
				ref += " / "
			}
			ref += d.Ingredient
		}
		fmt.Printf("[%s] %s (%s): %s\n", d.Kind, d.Message, ref, d.ActionHint)
	}

	if *strict && len(diags) > 0 {
		os.Exit(1)
	}
}
