package dto

// PaginationParams defines common cursor pagination query parameters.
type PaginationParams struct {
	Limit     int     `form:"limit,default=20" binding:"omitempty,min=1,max=100"`
	NextToken *string `form:"nextToken"`
}
