package schema

// Built-in extraction types. Field sets mirror the record shapes served by
// the public API; all fields are optional and absence only lowers confidence.

// SentimentValues are the allowed labels for the sentiment enum field.
var SentimentValues = []string{"positive", "negative", "neutral"}

// Person describes a single person: name, role, employer.
func Person() Schema {
	return &Def{
		TypeName: "person",
		Desc:     "Person details (name, job title, company)",
		FieldSpecs: []FieldSpec{
			{Name: "full_name", Type: String, Description: "Full name"},
			{Name: "job_title", Type: String, Description: "Job title"},
			{Name: "company_name", Type: String, Description: "Company name"},
		},
	}
}

// Sentiment describes a sentiment classification with supporting keywords.
// A non-empty keyword list boosts confidence slightly; the boost magnitude
// is a property of this schema, not a global constant.
func Sentiment() Schema {
	return &Def{
		TypeName: "sentiment",
		Desc:     "Sentiment analysis (label, score, keywords)",
		FieldSpecs: []FieldSpec{
			{Name: "sentiment", Type: Enum, Description: "Overall sentiment label", EnumValues: SentimentValues},
			{Name: "score", Type: Number, Description: "Classifier score in [0,1]"},
			{Name: "keywords", Type: StringList, Description: "Keywords driving the classification"},
		},
		Boost: func(rec *Record, base float64) float64 {
			if len(rec.GetList("keywords")) > 0 {
				return base + 0.1
			}
			return base
		},
	}
}

// Company describes an organization and how to reach it.
func Company() Schema {
	return &Def{
		TypeName: "company_info",
		Desc:     "Company details (name, industry, contact channels)",
		FieldSpecs: []FieldSpec{
			{Name: "company_name", Type: String, Description: "Company name"},
			{Name: "industry", Type: String, Description: "Industry"},
			{Name: "address", Type: String, Description: "Postal address"},
			{Name: "phone", Type: String, Description: "Phone number"},
			{Name: "email", Type: String, Description: "Email address"},
		},
	}
}

// Product describes a product listing.
func Product() Schema {
	return &Def{
		TypeName: "product_info",
		Desc:     "Product details (name, price, brand, description)",
		FieldSpecs: []FieldSpec{
			{Name: "product_name", Type: String, Description: "Product name"},
			{Name: "price", Type: String, Description: "Price as printed, currency included"},
			{Name: "description", Type: String, Description: "Short description"},
			{Name: "brand", Type: String, Description: "Brand"},
			{Name: "category", Type: String, Description: "Category"},
		},
	}
}

// Contact describes an individual's contact card.
func Contact() Schema {
	return &Def{
		TypeName: "contact_info",
		Desc:     "Contact details (name, phone, email, address)",
		FieldSpecs: []FieldSpec{
			{Name: "name", Type: String, Description: "Name"},
			{Name: "phone", Type: String, Description: "Phone number"},
			{Name: "email", Type: String, Description: "Email address"},
			{Name: "address", Type: String, Description: "Postal address"},
			{Name: "wechat", Type: String, Description: "WeChat handle"},
		},
	}
}

// Builtins returns fresh instances of every built-in schema in registration
// order.
func Builtins() []Schema {
	return []Schema{Person(), Sentiment(), Company(), Product(), Contact()}
}
