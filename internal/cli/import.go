package cli

import (
	"context"
	"fmt"

	"github.com/quangnv/habitkit/internal/constants"
	"github.com/quangnv/habitkit/internal/importer"
)

type ImportCmd struct {
	URL string `help:"Remote habit collection endpoint." default:"${import_url}"`
}

func (c *ImportCmd) Run(ctx *Context) error {
	t, err := ctx.openTracker()
	if err != nil {
		return err
	}

	url := c.URL
	if url == "" {
		url = constants.DefaultImportURL
	}

	fmt.Printf("Importing habits from %s ...\n", url)

	res, err := t.ImportFromRemote(context.Background(), importer.NewHTTPSource(url))
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	switch {
	case res.NoData:
		fmt.Println("No habits available from the remote source")
	case res.AllDuplicates():
		fmt.Printf("All %d habits already exist; nothing imported\n", res.Skipped)
	default:
		fmt.Printf("Imported %d new habit(s)", res.Imported)
		if res.Skipped > 0 {
			fmt.Printf(", skipped %d duplicate or invalid", res.Skipped)
		}
		fmt.Println()
	}
	return nil
}
