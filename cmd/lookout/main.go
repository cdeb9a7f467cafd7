// Package main provides a small demonstration binary for the lookout
// toolkit: it launches a browser, navigates to a page, and resolves a
// few locators with the logging and highlight decorators active, so the
// lazy-resolution engine can be watched against a real site.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	appconfig "github.com/entrhq/lookout/pkg/config"
	"github.com/entrhq/lookout/pkg/decorate"
	pwdriver "github.com/entrhq/lookout/pkg/driver/playwright"
	"github.com/entrhq/lookout/pkg/locator"
	"github.com/entrhq/lookout/pkg/query"
	"github.com/entrhq/lookout/pkg/session"
)

const version = "0.1.0"

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	valueStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

// Options holds the demo configuration.
type Options struct {
	ConfigPath  string
	URL         string
	Headless    bool
	ShowVersion bool
}

func parseFlags() Options {
	var opts Options
	flag.StringVar(&opts.ConfigPath, "config", "", "Path to a lookout YAML config file")
	flag.StringVar(&opts.URL, "url", "", "URL to open (overrides base_url from config)")
	flag.BoolVar(&opts.Headless, "headless", false, "Run the browser headless")
	flag.BoolVar(&opts.ShowVersion, "version", false, "Show version and exit")
	flag.Parse()
	return opts
}

func main() {
	opts := parseFlags()

	if opts.ShowVersion {
		fmt.Printf("lookout v%s\n", version)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

func run(opts Options) error {
	site := &session.Site{}
	if opts.ConfigPath != "" {
		cfg, err := appconfig.Load(opts.ConfigPath)
		if err != nil {
			return err
		}
		site, err = cfg.Site()
		if err != nil {
			return err
		}
	}

	url := opts.URL
	if url == "" {
		url = site.BaseURL
	}
	if url == "" {
		return fmt.Errorf("no URL: pass -url or set base_url in the config")
	}

	fmt.Println(titleStyle.Render("lookout demo"))
	fmt.Println(labelStyle.Render("navigating to ") + valueStyle.Render(url))

	driver, err := pwdriver.Launch(pwdriver.Options{Headless: opts.Headless})
	if err != nil {
		return err
	}
	defer driver.Close()

	if err := driver.Navigate(url); err != nil {
		return err
	}

	sess := session.New(driver.Root(), site)

	heading, err := locator.New(sess, "pageHeading", query.CSS("h1"))
	if err != nil {
		return err
	}
	links, err := locator.NewCollection(sess, "pageLinks", query.Tag("a"),
		locator.WithCollectionReadiness(locator.NonEmpty))
	if err != nil {
		return err
	}

	logging, err := decorate.NewLogging()
	if err != nil {
		return err
	}
	highlight, err := decorate.NewHighlight()
	if err != nil {
		return err
	}

	return sess.WithDecorators(logging, highlight)(func() error {
		el, err := heading.Get()
		if err != nil {
			return fmt.Errorf("resolving heading: %w", err)
		}
		text, err := el.Text()
		if err != nil {
			return err
		}
		fmt.Println(labelStyle.Render("heading: ") + valueStyle.Render(text))

		all, err := links.Get()
		if err != nil {
			return fmt.Errorf("resolving links: %w", err)
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("resolved %d links", len(all))))
		for i, link := range all {
			if i >= 10 {
				fmt.Println(labelStyle.Render("..."))
				break
			}
			text, err := link.Text()
			if err != nil {
				continue
			}
			href, _ := link.Attribute("href")
			fmt.Printf("  %s %s\n", valueStyle.Render(text), labelStyle.Render(href))
		}
		return nil
	})
}
