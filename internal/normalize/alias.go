package normalize

// Field names a canonical JobRecord attribute.
type Field string

const (
	FieldTitle       Field = "title"
	FieldCompanyName Field = "company_name"
	FieldJobLink     Field = "job_link"
	FieldLocation    Field = "location"
	FieldDescription Field = "description"
	FieldDatePosted  Field = "date_posted"
)

// AliasTable maps a canonical field to the upstream key names that may
// carry its value. Order encodes precedence: earlier aliases win on
// conflict. The table is static configuration, not derived data.
type AliasTable map[Field][]string

// DefaultAliases covers the key names seen from SerpAPI google_jobs and
// the RapidAPI LinkedIn/active-jobs endpoints.
var DefaultAliases = AliasTable{
	FieldTitle:       {"title", "job_title", "jobTitle", "position", "name"},
	FieldCompanyName: {"company_name", "company", "companyName", "employer", "organization", "firm"},
	FieldJobLink:     {"job_link", "link", "url", "job_url", "jobUrl", "share_link", "redirect_url", "apply_link"},
	FieldLocation:    {"location", "job_location", "jobGeo", "place", "city"},
	FieldDescription: {"description", "job_description", "snippet", "summary", "excerpt"},
	FieldDatePosted:  {"date_posted", "posted_at", "postedAt", "date", "listed_at", "publication_date", "pubDate", "created"},
}
