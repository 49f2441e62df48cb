package editor

var (
	tiers    = []string{"tier_1", "tier_2", "tier_3"}
	statuses = []string{"draft", "published", "archived"}
)

// NewsForm edits news items.
var NewsForm = Form{
	Entity: "news",
	Fields: []Field{
		{Key: "title", Label: "Title", Required: true},
		{Key: "description", Label: "Description", Required: true},
		{Key: "summary", Label: "Summary"},
		{Key: "source", Label: "Source"},
		{Key: "source_url", Label: "Source URL"},
		{Key: "image_url", Label: "Image URL"},
		{Key: "category", Label: "Category", Default: "General"},
		{Key: "tier", Label: "Tier", Kind: Choice, Choices: tiers, Default: "tier_2"},
		{Key: "status", Label: "Status", Kind: Choice, Choices: statuses, Default: "draft"},
		{Key: "tags", Label: "Tags (comma separated)", Kind: List},
		{Key: "affected_roles", Label: "Affected roles (comma separated)", Kind: List},
		{Key: "companies", Label: "Companies (comma separated)", Kind: List},
		{Key: "key_stat_value", Label: "Key stat value"},
		{Key: "key_stat_label", Label: "Key stat label"},
		{Key: "secondary_stat_value", Label: "Secondary stat value"},
		{Key: "secondary_stat_label", Label: "Secondary stat label"},
		{Key: "published_date", Label: "Published date", Kind: Time},
	},
}

// ReportForm edits research reports.
var ReportForm = Form{
	Entity: "report",
	Fields: []Field{
		{Key: "title", Label: "Title", Required: true},
		{Key: "summary", Label: "Summary", Required: true},
		{Key: "content", Label: "Content (markdown)", FromFile: true},
		{Key: "file_url", Label: "File URL"},
		{Key: "pdf_url", Label: "PDF URL"},
		{Key: "cover_image_url", Label: "Cover image URL"},
		{Key: "tags", Label: "Tags (comma separated)", Kind: List},
		{Key: "status", Label: "Status", Kind: Choice, Choices: statuses, Default: "draft"},
		{Key: "reading_time", Label: "Reading time (minutes)", Kind: Int},
		{Key: "author", Label: "Author"},
		{Key: "rich_template", Label: "Rich template", Kind: Bool},
		{Key: "published_date", Label: "Published date", Kind: Time},
	},
}

// CardForm edits intelligence cards. Stats are sent flat, the server
// assembles the nested objects.
var CardForm = Form{
	Entity: "card",
	Fields: []Field{
		{Key: "title", Label: "Title", Required: true},
		{Key: "title_highlight", Label: "Highlighted part of the title"},
		{Key: "company", Label: "Company", Required: true},
		{Key: "company_icon", Label: "Company icon"},
		{Key: "company_gradient", Label: "Company gradient"},
		{Key: "company_logo", Label: "Company logo URL"},
		{Key: "category", Label: "Category"},
		{Key: "excerpt", Label: "Excerpt"},
		{Key: "tier", Label: "Tier", Kind: Choice, Choices: tiers, Default: "tier_2"},
		{Key: "tier_label", Label: "Tier label"},
		{Key: "status", Label: "Status", Kind: Choice, Choices: statuses, Default: "draft"},
		{Key: "stat1_value", Label: "Stat 1 value"},
		{Key: "stat1_label", Label: "Stat 1 label"},
		{Key: "stat2_value", Label: "Stat 2 value"},
		{Key: "stat2_label", Label: "Stat 2 label"},
		{Key: "stat2_type", Label: "Stat 2 type", Kind: Choice, Choices: []string{"critical", "elevated", "moderate"}},
		{Key: "stat3_value", Label: "Stat 3 value"},
		{Key: "stat3_label", Label: "Stat 3 label"},
		{Key: "rpi_score", Label: "RPI score"},
		{Key: "jobs_affected", Label: "Jobs affected"},
		{Key: "ai_investment", Label: "AI investment"},
		{Key: "report_id", Label: "Linked report id"},
		{Key: "analysis_url", Label: "Analysis URL"},
		{Key: "is_featured", Label: "Featured", Kind: Bool},
		{Key: "display_order", Label: "Display order", Kind: Int},
		{Key: "industry", Label: "Industry"},
		{Key: "tags", Label: "Tags (comma separated)", Kind: List},
		{Key: "published_date", Label: "Published date", Kind: Time},
	},
}

// AccountForm registers user and admin accounts.
var AccountForm = Form{
	Entity: "account",
	Fields: []Field{
		{Key: "email", Label: "Email", Required: true},
		{Key: "username", Label: "Username", Required: true},
		{Key: "password", Label: "Password", Required: true, Secret: true},
		{Key: "confirm_password", Label: "Confirm password", Required: true, Secret: true, Local: true},
	},
	Check: func(values map[string]string) []FieldError {
		if values["password"] != values["confirm_password"] {
			return []FieldError{{Field: "confirm_password", Message: "passwords do not match"}}
		}
		return nil
	},
}
