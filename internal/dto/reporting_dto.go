package dto

// ReportPeriodParams defines the from/to query parameters shared by the
// period reports.
type ReportPeriodParams struct {
	From string `form:"from"` // YYYY-MM-DD, defaults to start of current month
	To   string `form:"to"`   // YYYY-MM-DD, defaults to today
}

// ReportAsOfParams defines the as-of query parameter shared by the
// point-in-time reports.
type ReportAsOfParams struct {
	AsOf string `form:"asOf"` // YYYY-MM-DD, defaults to today
}

// Report responses serialize the domain report structs directly; no
// separate DTO shapes are needed for them.
