package newsapi

import (
	"context"
	"fmt"
	"strings"
	"time"

	// Packages
	humanize "github.com/dustin/go-humanize"
	client "github.com/mutablelogic/go-client"
	schema "github.com/mutablelogic/go-chatbot/pkg/schema"
	tool "github.com/mutablelogic/go-chatbot/pkg/tool"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type news struct {
	client *Client
	now    func() time.Time
}

var _ tool.Tool = (*news)(nil)

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	toolName        = "news"
	toolDescription = "Get real-time news headlines and articles from various sources."
	demoSuffix      = " Returns simulated demo data."
	defaultTopic    = "general"
	defaultCountry  = "us"
	defaultCount    = 5
	maxCount        = 10
)

var (
	topics = []any{"business", "entertainment", "general", "health", "science", "sports", "technology"}
)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// NewTool returns the news tool. Without an API key the tool reports demo
// headlines; a malformed key is an error.
func NewTool(apikey string, opts ...client.ClientOpt) (tool.Tool, error) {
	if ok, err := tool.CheckKey(apikey); err != nil {
		return nil, err
	} else if !ok {
		return &news{now: time.Now}, nil
	}
	client, err := New(apikey, opts...)
	if err != nil {
		return nil, err
	}
	return &news{client: client, now: time.Now}, nil
}

///////////////////////////////////////////////////////////////////////////////
// TOOL INTERFACE

func (t *news) Spec() schema.ToolSpec {
	description := toolDescription
	if t.client == nil {
		description += demoSuffix
	}
	return schema.ToolSpec{
		Name:        toolName,
		Description: description,
		Parameters: []schema.ToolParameter{
			schema.NewParameter("topic", schema.TypeString, "News topic or category", false).WithEnum(topics...).WithDefault(defaultTopic),
			schema.NewParameter("country", schema.TypeString, "Country code for news (e.g., 'us', 'gb', 'jp')", false).WithDefault(defaultCountry),
			schema.NewParameter("count", schema.TypeInteger, "Number of articles to fetch (1-10)", false).WithDefault(defaultCount),
		},
	}
}

func (t *news) Execute(ctx context.Context, args schema.Args) (string, error) {
	topic := strings.ToLower(args.String("topic"))
	if topic == "" {
		topic = defaultTopic
	}
	country := strings.ToLower(args.String("country"))
	if country == "" {
		country = defaultCountry
	}
	count := min(max(args.Int("count", defaultCount), 1), maxCount)

	// Demo headlines
	if t.client == nil {
		available := demoHeadlines(topic, t.now())
		return format(topic, country, available[:min(count, len(available))], len(available), t.now()), nil
	}

	articles, err := t.client.Headlines(ctx, NewHeadlinesRequest(topic, country, count))
	if err != nil {
		return "", err
	}
	if len(articles) == 0 {
		return fmt.Sprintf("No %s headlines found for %s.", topic, strings.ToUpper(country)), nil
	}
	return format(topic, country, articles[:min(count, len(articles))], len(articles), t.now()), nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func format(topic, country string, articles []Article, total int, now time.Time) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Latest %s News (%s):\n\n", strings.ToUpper(topic[:1])+topic[1:], strings.ToUpper(country))
	for i, article := range articles {
		fmt.Fprintf(&buf, "%d. **%s**\n", i+1, article.Title)
		fmt.Fprintf(&buf, "   %s", article.Source.Name)
		if !article.PublishedAt.IsZero() {
			fmt.Fprintf(&buf, " • %s", humanize.RelTime(article.PublishedAt, now, "ago", "from now"))
		}
		buf.WriteString("\n\n")
	}
	fmt.Fprintf(&buf, "*Showing %d of %d available articles*", len(articles), total)
	return buf.String()
}

// demoHeadlines returns canned headlines for a topic, unknown topics fall
// back to general
func demoHeadlines(topic string, now time.Time) []Article {
	type headline struct {
		title, source string
		age           time.Duration
	}
	data := map[string][]headline{
		"technology": {
			{"AI Breakthrough in Natural Language Processing", "TechNews", 2 * time.Hour},
			{"New Quantum Computing Milestone Achieved", "ScienceDaily", 4 * time.Hour},
			{"Major Tech Company Announces Revolutionary Product", "TechCrunch", 6 * time.Hour},
			{"Cybersecurity Experts Warn of New Threats", "SecurityWeekly", 8 * time.Hour},
			{"Startup Raises $50M for Green Technology", "VentureBeat", 10 * time.Hour},
		},
		"business": {
			{"Stock Market Reaches New All-Time High", "FinancialTimes", 1 * time.Hour},
			{"Major Merger Announced in Tech Sector", "Bloomberg", 3 * time.Hour},
			{"Central Bank Announces New Policy Changes", "Reuters", 5 * time.Hour},
			{"Startup Ecosystem Shows Strong Growth", "Forbes", 7 * time.Hour},
			{"Global Supply Chain Improvements Reported", "WSJ", 9 * time.Hour},
		},
		"sports": {
			{"Championship Game Ends in Dramatic Victory", "ESPN", 30 * time.Minute},
			{"Olympic Athlete Breaks World Record", "Olympics", 2 * time.Hour},
			{"Team Announces Major Roster Changes", "SportsCenter", 4 * time.Hour},
			{"New Stadium Construction Begins", "LocalNews", 6 * time.Hour},
			{"Sports League Announces Rule Changes", "LeagueOffice", 8 * time.Hour},
		},
		"general": {
			{"Global Climate Summit Reaches Historic Agreement", "WorldNews", 1 * time.Hour},
			{"New Medical Breakthrough Announced", "HealthNews", 3 * time.Hour},
			{"Education Reform Bill Passes Senate", "PoliticsDaily", 5 * time.Hour},
			{"Cultural Festival Draws Record Crowds", "CultureMag", 7 * time.Hour},
			{"Space Mission Successfully Launched", "SpaceNews", 9 * time.Hour},
		},
	}
	headlines, exists := data[topic]
	if !exists {
		headlines = data[defaultTopic]
	}
	result := make([]Article, 0, len(headlines))
	for _, h := range headlines {
		result = append(result, Article{
			Title:       h.title,
			Source:      Source{Name: h.source},
			PublishedAt: now.Add(-h.age),
		})
	}
	return result
}
