package lead

import "strings"

// Well-known field names used across the pipeline
const (
	FieldEmail          = "email"
	FieldTags           = "tags"
	FieldFirstName      = "first_name"
	FieldLastName       = "last_name"
	FieldIntentCategory = "intent_category"
)

// DefaultEmailColumns are the vendor feed's email-bearing columns
var DefaultEmailColumns = []string{"email_1", "email_2", "email_3"}

// knownColumns is the fixed non-intent column set of the vendor feed.
// Anything outside this set (and the email columns) is an intent column
var knownColumns = map[string]struct{}{}

func init() {
	for _, c := range []string{
		"first_name", "last_name",
		"email_1", "email_2", "email_3",
		"phone_1", "phone_1_dnc", "phone_2", "phone_2_dnc", "phone_3", "phone_3_dnc",
		"address", "city", "state", "zip_code", "zip4",
		"fips_state_code", "fips_county_code", "county_name",
		"latitude", "longitude",
		"age", "gender", "address_type",
		"cbsa", "census_tract", "census_block_group", "census_block",
		"scf", "dma", "msa", "congressional_district",
		"head_of_household", "birth_month_and_year", "prop_type",
		"n_household_children", "credit_range", "household_income",
		"household_net_worth", "home_owner_status", "marital_status",
		"occupation", "median_home_value", "education", "length_of_residence",
		"n_household_adults", "political_party",
		"health_beauty_products", "cosmetics", "jewelry",
		"investment_type", "investments",
		"pet_owner", "pets_affinity",
		"health_affinity", "diet_affinity", "fitness_affinity", "outdoors_affinity",
		"boating_sailing_affinity", "camping_hiking_climbing_affinity",
		"fishing_affinity", "hunting_affinity",
		"aerobics", "nascar", "scuba", "weight_lifting",
		"healthy_living_interest", "motor_racing", "foreign_travel",
		"self_improvement", "walking", "fitness",
		"ethnicity_detail", "ethnic_group",
		"md5", "insight",
		"intent_category",
		"email", "tags",
	} {
		knownColumns[c] = struct{}{}
	}
}

// Known reports whether name is part of the fixed feed column set
func Known(name string) bool {
	_, ok := knownColumns[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// IntentColumns returns the columns of header that carry intent signals:
// everything not in the known set and not an email column, in header order
func IntentColumns(header []string, emailCols []string) []string {
	skip := make(map[string]struct{}, len(emailCols))
	for _, c := range emailCols {
		skip[strings.ToLower(c)] = struct{}{}
	}
	var out []string
	for _, h := range header {
		lh := strings.ToLower(strings.TrimSpace(h))
		if lh == "" {
			continue
		}
		if _, ok := skip[lh]; ok {
			continue
		}
		if Known(lh) {
			continue
		}
		out = append(out, h)
	}
	return out
}

// hoisted is the fixed front-of-file order for Mailchimp-importable output
var hoisted = []string{FieldEmail, FieldTags, FieldFirstName, FieldLastName}

// canonicalHeaders maps hoisted internal names to Mailchimp's import template names
var canonicalHeaders = map[string]string{
	FieldEmail:     "Email Address",
	FieldTags:      "Tags",
	FieldFirstName: "First Name",
	FieldLastName:  "Last Name",
}

// CanonicalHeader returns the Mailchimp import header for a hoisted field,
// or name unchanged for pass-through columns
func CanonicalHeader(name string) string {
	if h, ok := canonicalHeaders[name]; ok {
		return h
	}
	return name
}

// OutputColumns derives the export column order from an input header:
// the email columns collapse into the single email field, tags is appended
// when tagging is on, and hoisted fields move to the front
func OutputColumns(header, emailCols []string, withTags bool) []string {
	skip := make(map[string]struct{}, len(emailCols))
	for _, c := range emailCols {
		skip[strings.ToLower(strings.TrimSpace(c))] = struct{}{}
	}

	out := []string{FieldEmail}
	seen := map[string]struct{}{FieldEmail: {}}
	for _, h := range header {
		lh := strings.ToLower(strings.TrimSpace(h))
		if lh == "" {
			continue
		}
		if _, ok := skip[lh]; ok {
			continue
		}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		out = append(out, h)
	}
	if withTags {
		if _, ok := seen[FieldTags]; !ok {
			out = append(out, FieldTags)
		}
	}
	return ExportOrder(out)
}

// ExportOrder returns names reordered for export: the hoisted fields that are
// present come first in their fixed order, the rest keep their input order
func ExportOrder(names []string) []string {
	present := make(map[string]struct{}, len(names))
	for _, n := range names {
		present[n] = struct{}{}
	}
	out := make([]string, 0, len(names))
	for _, h := range hoisted {
		if _, ok := present[h]; ok {
			out = append(out, h)
		}
	}
	for _, n := range names {
		isHoisted := false
		for _, h := range hoisted {
			if n == h {
				isHoisted = true
				break
			}
		}
		if !isHoisted {
			out = append(out, n)
		}
	}
	return out
}
