package agent

import (
	"context"
	"fmt"

	"github.com/etnz/wealth"
	"github.com/etnz/wealth/docs"
	"github.com/etnz/wealth/report"
	"google.golang.org/genai"
)

// Loader returns a report builder over the current workbook.
type Loader func() (*report.Builder, error)

// Func implements a simple Function
type Func struct {
	// Declare this function
	Decl *genai.FunctionDeclaration
	// Call this function
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// windowSchema are the parameters selecting a window.
func windowSchema() map[string]*genai.Schema {
	return map[string]*genai.Schema{
		"focus": {
			Type:        genai.TypeString,
			Description: "The window: mtd, qtd, ytd, r12, year or custom. Default is ytd.",
			Enum:        []string{"mtd", "qtd", "ytd", "r12", "year", "custom"},
		},
		"year": {
			Type:        genai.TypeInteger,
			Description: "The selected year, the current year by default.",
		},
		"from": {
			Type:        genai.TypeString,
			Description: "First day (YYYY-MM-DD) of a custom window.",
		},
		"to": {
			Type:        genai.TypeString,
			Description: "Last day (YYYY-MM-DD) of a custom window.",
		},
	}
}

// withWindow returns the window parameters and extra.
func withWindow(extra map[string]*genai.Schema) map[string]*genai.Schema {
	props := windowSchema()
	for k, v := range extra {
		props[k] = v
	}
	return props
}

// parseQuery reads the window parameters of a call.
func parseQuery(args map[string]any) (report.Query, error) {
	q := report.Query{Focus: wealth.YearToDate}
	if s, ok := args["focus"].(string); ok && s != "" {
		f, err := wealth.ParseFocus(s)
		if err != nil {
			return q, err
		}
		q.Focus = f
	}
	switch y := args["year"].(type) {
	case nil:
	case float64:
		q.Year = int(y)
	case int:
		q.Year = y
	default:
		return q, fmt.Errorf("argument 'year' is not a number but %T", y)
	}
	if q.Focus == wealth.Custom {
		from, err := dateArg(args, "from")
		if err != nil {
			return q, err
		}
		to, err := dateArg(args, "to")
		if err != nil {
			return q, err
		}
		q.Custom = wealth.NewRange(from, to)
	}
	return q, nil
}

func dateArg(args map[string]any, name string) (wealth.Date, error) {
	s, ok := args[name].(string)
	if !ok {
		return wealth.Date{}, fmt.Errorf("argument %q is required for a custom window", name)
	}
	return wealth.ParseDate(s)
}

func stringsArg(args map[string]any, name string) []string {
	list, _ := args[name].([]any)
	var out []string
	for _, v := range list {
		if s, ok := v.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}

// reportFunc declares a tool rendering a report of a window.
func reportFunc(load Loader, name, description string, extra map[string]*genai.Schema, render func(*report.Builder, report.Query, map[string]any) (string, error)) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: description,
			Parameters: &genai.Schema{
				Type:       genai.TypeObject,
				Properties: withWindow(extra),
			},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted report.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			q, err := parseQuery(args)
			if err != nil {
				return errorResponse(id, name, err)
			}
			b, err := load()
			if err != nil {
				return errorResponse(id, name, fmt.Errorf("could not load workbook: %w", err))
			}
			out, err := render(b, q, args)
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, out)
		},
	}
}

func analystTools(load Loader) []*Func {
	return []*Func{
		reportFunc(load, "Windows",
			"Windows returns the exact dates of the current and shadow windows of a focus.",
			nil,
			func(b *report.Builder, q report.Query, _ map[string]any) (string, error) {
				return b.WindowsMarkdown(q), nil
			}),
		reportFunc(load, "NetWorth",
			"NetWorth returns the net worth, its assets, and the attribution of its change over the window into net contributions and market gain.",
			nil,
			func(b *report.Builder, q report.Query, _ map[string]any) (string, error) {
				return b.NetWorthMarkdown(q)
			}),
		reportFunc(load, "Performance",
			"Performance returns the portfolio attribution over the window: contributions, market alpha, money-weighted return, max drawdown and growth velocity.",
			nil,
			func(b *report.Builder, q report.Query, _ map[string]any) (string, error) {
				return b.PerformanceMarkdown(q, nil), nil
			}),
		reportFunc(load, "Positions",
			"Positions returns the trade lots grouped by ticker, with net quantity and average cost. The window is ignored.",
			map[string]*genai.Schema{
				"open": {Type: genai.TypeBoolean, Description: "Only list open positions."},
			},
			func(b *report.Builder, _ report.Query, args map[string]any) (string, error) {
				open, _ := args["open"].(bool)
				return b.PositionsMarkdown(open), nil
			}),
		reportFunc(load, "Spending",
			"Spending returns the spending hierarchy of the window: categories, subcategories and merchants, with variance to the previous 12 months.",
			map[string]*genai.Schema{
				"metric": {Type: genai.TypeString, Description: "Rank by value or by count.", Enum: []string{"value", "count"}},
				"pulse":  {Type: genai.TypeBoolean, Description: "Rank the top merchants regardless of categories."},
			},
			func(b *report.Builder, q report.Query, args map[string]any) (string, error) {
				var opts report.SpendingOptions
				s, _ := args["metric"].(string)
				metric, err := wealth.ParseMetric(s)
				if err != nil {
					return "", err
				}
				opts.Metric = metric
				opts.Pulse, _ = args["pulse"].(bool)
				return b.SpendingMarkdown(q, opts), nil
			}),
		reportFunc(load, "Flow",
			"Flow compares spending of the current and shadow windows one level below a drill path, with a monthly trend.",
			map[string]*genai.Schema{
				"path": {
					Type:        genai.TypeArray,
					Items:       &genai.Schema{Type: genai.TypeString},
					Description: "Drill path: empty for categories, a category for its subcategories, a category and a subcategory for months.",
				},
			},
			func(b *report.Builder, q report.Query, args map[string]any) (string, error) {
				return b.FlowMarkdown(q, wealth.FlowOptions{Path: stringsArg(args, "path")}), nil
			}),
		topicFunc(),
	}
}

func topicFunc() *Func {
	const name = "Topic"
	topics, _ := docs.GetAllTopics()
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: "Topic returns a documentation topic explaining how the figures are computed.",
			Parameters: &genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"topic": {Type: genai.TypeString, Enum: topics},
				},
				Required: []string{"topic"},
			},
			Response: &genai.Schema{Type: genai.TypeString, Description: "The markdown topic."},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			topic, _ := args["topic"].(string)
			content, err := docs.GetTopic(topic)
			if err != nil {
				return errorResponse(id, name, err)
			}
			return outputResponse(id, name, content)
		},
	}
}
