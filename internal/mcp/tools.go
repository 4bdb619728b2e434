package mcp

import "github.com/mark3labs/mcp-go/mcp"

var convertTextToolDef = mcp.NewTool("convert_text",
	mcp.WithDescription("Rewrite spoken-English number words in text as numerals, e.g. "+
		"\"twelve ninety nine east thirty fourth street\" becomes \"1299 east 34 street\". "+
		"Text without number words is returned unchanged."),
	mcp.WithString("text",
		mcp.Required(),
		mcp.Description("Text to convert"),
	),
	mcp.WithBoolean("explain",
		mcp.Description("Include each replaced phrase and its numeral"),
	),
	mcp.WithBoolean("no_history",
		mcp.Description("Do not record this conversion"),
	),
)

var convertBatchToolDef = mcp.NewTool("convert_batch",
	mcp.WithDescription("Convert several texts at once. Results are returned in input order."),
	mcp.WithArray("texts",
		mcp.Required(),
		mcp.Description("Texts to convert"),
		mcp.Items(map[string]any{"type": "string"}),
	),
	mcp.WithBoolean("explain",
		mcp.Description("Include each replaced phrase and its numeral"),
	),
	mcp.WithBoolean("no_history",
		mcp.Description("Do not record these conversions"),
	),
)

var historyListToolDef = mcp.NewTool("history_list",
	mcp.WithDescription("List recorded conversions, newest first."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithString("source",
		mcp.Description("Only conversions from this source"),
		mcp.Enum("cli", "web", "api", "mcp"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum items to return (default 20, max 100)"),
	),
	mcp.WithNumber("offset",
		mcp.Description("Items to skip"),
	),
)

var historySearchToolDef = mcp.NewTool("history_search",
	mcp.WithDescription("Full-text search over recorded conversions, matching either the spoken input "+
		"or the numeral output. Best matches first. Supports FTS5 syntax: \"quoted phrases\", "+
		"prefix*, OR, NOT, and column filters such as output_text:115."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Search query"),
	),
	mcp.WithString("source",
		mcp.Description("Only conversions from this source"),
		mcp.Enum("cli", "web", "api", "mcp"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum items to return (default 20, max 100)"),
	),
	mcp.WithNumber("offset",
		mcp.Description("Items to skip"),
	),
)

var historyFetchToolDef = mcp.NewTool("history_fetch",
	mcp.WithDescription("Fetch one recorded conversion with its full input and output text."),
	mcp.WithReadOnlyHintAnnotation(true),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Conversion ID"),
	),
)

var historyPurgeToolDef = mcp.NewTool("history_purge",
	mcp.WithDescription("Permanently delete recorded conversions."),
	mcp.WithDestructiveHintAnnotation(true),
	mcp.WithString("source",
		mcp.Description("Only purge conversions from this source"),
		mcp.Enum("cli", "web", "api", "mcp"),
	),
	mcp.WithNumber("older_than_days",
		mcp.Description("Only purge conversions created more than this many days ago"),
	),
)
