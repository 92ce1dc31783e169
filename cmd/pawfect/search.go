package main

import (
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v2"

	pawfect "github.com/pranavi39/pawfect/pkg/sdk"
)

func searchCommand(c *cli.Context) error {
	products := c.String("products")
	stemming := c.Bool("stemming")
	if products == "" {
		cfg, _, err := loadConfig(c)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		products = cfg.Catalog.ProductsPath
		if !c.IsSet("stemming") {
			stemming = cfg.Search.Stemming
		}
	}

	client, err := pawfect.Open(c.Context, pawfect.WithProducts(products), pawfect.WithStemming(stemming))
	if err != nil {
		return err
	}
	defer client.Close()

	start := time.Now()
	hits, err := client.Search(c.Context, c.String("category"), c.String("query"), c.Int("limit"))
	if err != nil {
		return err
	}
	took := time.Since(start)

	tw := tabwriter.NewWriter(c.App.Writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tPRICE\tSCORE\tDESCRIPTION")
	for _, h := range hits {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.4f\t%s\n", h.ID, h.Name, h.Price, h.Score, truncate(h.Description, 60))
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(c.App.Writer, "%d result(s) in %s\n", len(hits), took.Round(time.Microsecond))
	return err
}

func truncate(s string, n int) string {
	r := []rune(strings.TrimSpace(s))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
