package catalog

type EventListQuery struct {
	Search   string `form:"search" binding:"omitempty,max=100"`
	Category string `form:"category" binding:"omitempty,max=64"`
	Location string `form:"location" binding:"omitempty,max=100"`
	Sort     string `form:"sort" binding:"omitempty,oneof=date price-low price-high title"`
	Lang     string `form:"lang" binding:"omitempty,oneof=sr en"`
	Limit    int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type SearchQuery struct {
	Q     string `form:"q" binding:"max=100"`
	Lang  string `form:"lang" binding:"omitempty,oneof=sr en"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}

type ListingQuery struct {
	Lang  string `form:"lang" binding:"omitempty,oneof=sr en"`
	Limit int    `form:"limit" binding:"omitempty,min=1,max=100"`
}
