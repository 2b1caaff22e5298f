// Package main provides the lux CLI.
//
// commands.go contains all cobra command definitions and their flag
// configurations. Each command builder creates a command and wires it to its
// handler.
package main

import (
	"time"

	"github.com/spf13/cobra"
)

// =============================================================================
// Insider Command
// =============================================================================

// buildInsiderCmd creates the "insider" command for market-data lookups.
func buildInsiderCmd() *cobra.Command {
	var (
		site  string
		max   int
		delay time.Duration
	)

	cmd := &cobra.Command{
		Use:   "insider SYMBOL [SYMBOL...]",
		Short: "Look up insider trading activity for stock symbols",
		Example: `  # Single symbol
  lux insider AAPL

  # Several symbols, pausing 2s between lookups
  lux insider AAPL MSFT GOOG --delay 2s`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInsider(cmd, args, site, max, delay)
		},
	}

	cmd.Flags().StringVar(&site, "site", "", "Market-data site URL (default NASDAQ)")
	cmd.Flags().IntVar(&max, "max-transactions", 10, "How many transactions to record per symbol")
	cmd.Flags().DurationVar(&delay, "delay", 2*time.Second, "Pause between symbols")

	return cmd
}

// =============================================================================
// Search Command
// =============================================================================

// buildSearchCmd creates the "search" command for product searches.
func buildSearchCmd() *cobra.Command {
	var (
		store      string
		sortBy     string
		prime      bool
		minRating  int
		maxPrice   int
		maxResults int
		output     string
	)

	cmd := &cobra.Command{
		Use:   "search QUERY",
		Short: "Search a store for products",
		Example: `  # Default store, relevance order
  lux search "usb-c hub"

  # Filtered and exported
  lux search "usb-c hub" --sort price_low_to_high --prime --min-rating 4 --output results.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args[0], store, sortBy, prime, minRating, maxPrice, maxResults, output)
		},
	}

	cmd.Flags().StringVar(&store, "store", "", "Store URL (default Amazon)")
	cmd.Flags().StringVar(&sortBy, "sort", "relevance", "Sort order: relevance, price_low_to_high, price_high_to_low, avg_review, newest")
	cmd.Flags().BoolVar(&prime, "prime", false, "Apply the Prime shipping filter")
	cmd.Flags().IntVar(&minRating, "min-rating", 0, "Minimum star rating filter (1-4)")
	cmd.Flags().IntVar(&maxPrice, "max-price", 0, "Maximum price filter in whole dollars")
	cmd.Flags().IntVar(&maxResults, "max-results", 10, "How many products to record")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the result to a JSON file")

	return cmd
}

// =============================================================================
// Shop Command
// =============================================================================

// buildShopCmd creates the "shop" command for cart-placement flows.
func buildShopCmd() *cobra.Command {
	var (
		store      string
		size       string
		color      string
		addToCart  bool
		cartButton string
	)

	cmd := &cobra.Command{
		Use:   "shop PRODUCT",
		Short: "Find a product and optionally add it to the cart",
		Example: `  # Browse only
  lux shop "Air Zoom Pegasus" --store https://www.nike.com

  # Pick a variant and add it to the bag
  lux shop "Air Zoom Pegasus" --store https://www.nike.com --size 10 --color black --add-to-cart`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShop(cmd, args[0], store, size, color, addToCart, cartButton)
		},
	}

	cmd.Flags().StringVar(&store, "store", "", "Store URL (required)")
	cmd.Flags().StringVar(&size, "size", "", "Size to select")
	cmd.Flags().StringVar(&color, "color", "", "Color to select")
	cmd.Flags().BoolVar(&addToCart, "add-to-cart", false, "Place the item in the cart")
	cmd.Flags().StringVar(&cartButton, "cart-button", "", `Label of the add control (default "Add to Bag")`)
	_ = cmd.MarkFlagRequired("store")

	return cmd
}

// =============================================================================
// Book Command
// =============================================================================

// buildBookCmd creates the "book" command for appointment scheduling.
func buildBookCmd() *cobra.Command {
	var (
		site       string
		firstName  string
		lastName   string
		birthDate  string
		email      string
		phone      string
		zip        string
		date       string
		attempts   int
		retryPause time.Duration
	)

	cmd := &cobra.Command{
		Use:   "book SERVICE",
		Short: "Book an appointment, retrying failed attempts",
		Example: `  lux book "flu shot" --first-name Ada --last-name Lovelace --zip 94107 \
    --email ada@example.com --phone 555-0100`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBook(cmd, args[0], site, firstName, lastName, birthDate, email, phone, zip, date, attempts, retryPause)
		},
	}

	cmd.Flags().StringVar(&site, "site", "", "Booking site URL (default CVS)")
	cmd.Flags().StringVar(&firstName, "first-name", "", "Patient first name (required)")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Patient last name (required)")
	cmd.Flags().StringVar(&birthDate, "dob", "", "Date of birth (YYYY-MM-DD)")
	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.Flags().StringVar(&phone, "phone", "", "Contact phone")
	cmd.Flags().StringVar(&zip, "zip", "", "Zip code for the location search (required)")
	cmd.Flags().StringVar(&date, "date", "", "Earliest acceptable date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&attempts, "attempts", 0, "Booking attempts before giving up (default 3)")
	cmd.Flags().DurationVar(&retryPause, "retry-pause", 0, "Pause between attempts (default 5s)")
	_ = cmd.MarkFlagRequired("first-name")
	_ = cmd.MarkFlagRequired("last-name")
	_ = cmd.MarkFlagRequired("zip")

	return cmd
}

// =============================================================================
// Plans Command
// =============================================================================

// buildPlansCmd creates the "plans" command for health-plan browsing.
func buildPlansCmd() *cobra.Command {
	var (
		site      string
		zip       string
		household int
		income    int
		tier      string
	)

	cmd := &cobra.Command{
		Use:   "plans",
		Short: "Browse health insurance plans on a state exchange",
		Example: `  lux plans --zip 90012 --household 3 --income 65000 --tier Silver`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlans(cmd, site, zip, household, income, tier)
		},
	}

	cmd.Flags().StringVar(&site, "site", "", "Exchange URL (default Covered California)")
	cmd.Flags().StringVar(&zip, "zip", "", "Zip code (required)")
	cmd.Flags().IntVar(&household, "household", 0, "Household size")
	cmd.Flags().IntVar(&income, "income", 0, "Annual household income in dollars")
	cmd.Flags().StringVar(&tier, "tier", "", "Plan tier filter, e.g. Silver")
	_ = cmd.MarkFlagRequired("zip")

	return cmd
}

// =============================================================================
// QA Commands
// =============================================================================

// buildQACmd creates the "qa" command group for UI testing.
func buildQACmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "qa",
		Short: "Run UI test suites and page validations",
	}
	cmd.AddCommand(buildQARunCmd(), buildQAValidateCmd())
	return cmd
}

func buildQARunCmd() *cobra.Command {
	var (
		baseURL       string
		stopOnFailure bool
		parallel      bool
		delay         time.Duration
		tag           string
		reportPath    string
	)

	cmd := &cobra.Command{
		Use:   "run SUITE.yaml",
		Short: "Execute a YAML test suite",
		Example: `  # Run the whole suite and write a markdown report
  lux qa run suite.yaml --report report.md

  # Only the smoke-tagged tests, halting on the first failure
  lux qa run suite.yaml --tag smoke --stop-on-failure`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQASuite(cmd, args[0], baseURL, tag, reportPath, stopOnFailure, parallel, delay)
		},
	}

	cmd.Flags().StringVar(&baseURL, "base-url", "", "Override the suite's base URL")
	cmd.Flags().BoolVar(&stopOnFailure, "stop-on-failure", false, "Halt after the first failing test")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "Run tests concurrently")
	cmd.Flags().DurationVar(&delay, "delay", 0, "Pause between sequential tests")
	cmd.Flags().StringVar(&tag, "tag", "", "Only run tests carrying this tag")
	cmd.Flags().StringVar(&reportPath, "report", "", "Write a markdown report to this path")

	return cmd
}

func buildQAValidateCmd() *cobra.Command {
	var checks []string

	cmd := &cobra.Command{
		Use:   "validate URL",
		Short: "Run standalone page validations",
		Long: `Run one or more checks against a page.

Each --check is TYPE:TARGET or TYPE:TARGET:EXPECTED. Types: element_exists,
element_visible, element_enabled, text_contains, text_equals, element_count,
page_title, url_contains.`,
		Example: `  lux qa validate https://example.com \
    --check element_exists:"Sign In button" \
    --check text_contains:header:Welcome`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQAValidate(cmd, args[0], checks)
		},
	}

	cmd.Flags().StringArrayVar(&checks, "check", nil, "Validation in TYPE:TARGET[:EXPECTED] form (repeatable)")
	_ = cmd.MarkFlagRequired("check")

	return cmd
}

// =============================================================================
// Form Command
// =============================================================================

// buildFormCmd creates the "form" command for form filling.
func buildFormCmd() *cobra.Command {
	var (
		fields       []string
		submit       bool
		submitButton string
	)

	cmd := &cobra.Command{
		Use:   "form URL",
		Short: "Fill a web form",
		Example: `  lux form https://example.com/signup \
    --field "Full Name=Ada Lovelace" --field "Email=ada@example.com" --submit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runForm(cmd, args[0], fields, submit, submitButton)
		},
	}

	cmd.Flags().StringArrayVar(&fields, "field", nil, "Field in NAME=VALUE form (repeatable)")
	cmd.Flags().BoolVar(&submit, "submit", false, "Click the submit button at the end")
	cmd.Flags().StringVar(&submitButton, "submit-button", "", `Submit button label (default "Submit")`)
	_ = cmd.MarkFlagRequired("field")

	return cmd
}

// =============================================================================
// Scrape Command
// =============================================================================

// buildScrapeCmd creates the "scrape" command for data extraction.
func buildScrapeCmd() *cobra.Command {
	var (
		targets []string
		table   string
		headers bool
		wait    bool
		output  string
	)

	cmd := &cobra.Command{
		Use:   "scrape URL",
		Short: "Extract data from a page",
		Example: `  # Named targets
  lux scrape https://example.com/product --target "price=the product price" \
    --target "title=the product title" --output data.json

  # A whole table
  lux scrape https://example.com/stats --table "the quarterly results table" --headers`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScrape(cmd, args[0], targets, table, headers, wait, output)
		},
	}

	cmd.Flags().StringArrayVar(&targets, "target", nil, "Extraction target in NAME=DESCRIPTION form (repeatable)")
	cmd.Flags().StringVar(&table, "table", "", "Describe a table to extract instead of named targets")
	cmd.Flags().BoolVar(&headers, "headers", false, "Include the header row in table extraction")
	cmd.Flags().BoolVar(&wait, "wait", true, "Wait for the page to finish loading first")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write extracted data to a JSON file")

	return cmd
}

// =============================================================================
// Research Command
// =============================================================================

// buildResearchCmd creates the "research" command.
func buildResearchCmd() *cobra.Command {
	var (
		numSources int
		engine     string
		format     string
		saveTo     string
	)

	cmd := &cobra.Command{
		Use:   "research TOPIC",
		Short: "Research a topic across several sources",
		Example: `  lux research "solid state batteries" --sources 5 --save notes.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResearch(cmd, args[0], numSources, engine, format, saveTo)
		},
	}

	cmd.Flags().IntVar(&numSources, "sources", 0, "How many sources to consult (default 3)")
	cmd.Flags().StringVar(&engine, "engine", "", "Search engine (default google)")
	cmd.Flags().StringVar(&format, "format", "", "Summary format (default markdown)")
	cmd.Flags().StringVar(&saveTo, "save", "", "Ask the agent to save the summary to this file")

	return cmd
}

// =============================================================================
// Entry Command
// =============================================================================

// buildEntryCmd creates the "entry" command for bulk data entry.
func buildEntryCmd() *cobra.Command {
	var (
		url           string
		csvPath       string
		mappings      []string
		newButton     string
		submitButton  string
		confirmation  string
		delay         time.Duration
		stopOnFailure bool
	)

	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Key CSV records into a web form",
		Example: `  lux entry --url https://crm.example.com/contacts/new --csv contacts.csv \
    --map name="Full Name" --map email="Email Address"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEntry(cmd, url, csvPath, mappings, newButton, submitButton, confirmation, delay, stopOnFailure)
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "Entry form URL (required)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "CSV file with one record per row (required)")
	cmd.Flags().StringArrayVar(&mappings, "map", nil, "Column mapping in CSV_COLUMN=FIELD_NAME form (repeatable)")
	cmd.Flags().StringVar(&newButton, "new-button", "", `New-record button label (default "Add New")`)
	cmd.Flags().StringVar(&submitButton, "submit-button", "", `Submit button label (default "Save")`)
	cmd.Flags().StringVar(&confirmation, "confirm", "", "Confirmation text to wait for after each record")
	cmd.Flags().DurationVar(&delay, "delay", 0, "Pause between records")
	cmd.Flags().BoolVar(&stopOnFailure, "stop-on-failure", false, "Halt after the first failed record")
	_ = cmd.MarkFlagRequired("url")
	_ = cmd.MarkFlagRequired("csv")

	return cmd
}

// =============================================================================
// Report Command
// =============================================================================

// buildReportCmd creates the "report" command for data-collection reports.
func buildReportCmd() *cobra.Command {
	var (
		title       string
		sources     []string
		format      string
		dateRange   string
		screenshots bool
		saveTo      string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Collect data from several pages and compile a report",
		Long: `Collect data from several pages and compile a report.

Each --source is NAME|URL|WHAT-TO-EXTRACT, pipe-separated.`,
		Example: `  lux report --title "Weekly Sales Summary" \
    --source "Orders|https://admin.example.com/orders|Record the total order count" \
    --source "Returns|https://admin.example.com/returns|Record the return count" \
    --save reports/weekly.md`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReport(cmd, title, sources, format, dateRange, screenshots, saveTo)
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Report title (required)")
	cmd.Flags().StringArrayVar(&sources, "source", nil, "Data source in NAME|URL|INSTRUCTIONS form (repeatable)")
	cmd.Flags().StringVar(&format, "format", "", "Output format: markdown, html, pdf, docx, json (default markdown)")
	cmd.Flags().StringVar(&dateRange, "range", "", `Date range scope, e.g. "last 30 days"`)
	cmd.Flags().BoolVar(&screenshots, "screenshots", false, "Capture a screenshot of each source page")
	cmd.Flags().StringVar(&saveTo, "save", "", "Ask the agent to save the document to this path")
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("source")

	return cmd
}
