package cli

import "fmt"

func (c *VersionCmd) Run(ctx *Context) error {
	if ctx.Formatter.JSON {
		return ctx.Formatter.PrintJSON(map[string]interface{}{
			"name":    "mailpeek",
			"version": Version,
		})
	}

	fmt.Printf("mailpeek %s\n", Version)
	return nil
}
