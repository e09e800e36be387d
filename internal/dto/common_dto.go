package dto

// IDParam ID参数
type IDParam struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// RepoQuery 仓库定位参数
type RepoQuery struct {
	Owner string `form:"owner" binding:"required"`
	Repo  string `form:"repo" binding:"required"`
}
