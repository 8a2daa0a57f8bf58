package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mercari/internal/api"
	"mercari/internal/config"
)

// runAdd lists a new item: mercari add -name NAME -category CATEGORY -image FILE.
func runAdd(args []string) error {
	var name, category, imagePath string
	apiURL := config.LoadClient().APIURL

	fs := flag.NewFlagSet("mercari add", flag.ContinueOnError)
	fs.StringVar(&apiURL, "api", apiURL, "items API base URL")
	fs.StringVar(&name, "name", "", "item name (required)")
	fs.StringVar(&category, "category", "", "item category (required)")
	fs.StringVar(&imagePath, "image", "", "path to a .jpg image (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if name == "" || category == "" || imagePath == "" {
		fs.Usage()
		return fmt.Errorf("-name, -category and -image are required")
	}

	f, err := os.Open(imagePath)
	if err != nil {
		return err
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	msg, err := api.NewClient(apiURL).AddItem(ctx, name, category, filepath.Base(imagePath), f)
	if err != nil {
		return err
	}
	fmt.Println(msg)
	return nil
}
