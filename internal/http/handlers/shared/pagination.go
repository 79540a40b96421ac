package shared

import "github.com/storefront-next/internal/http/response"

// NormalizePagination 归一化分页参数（页码从 1 起，页大小 1-100）
func NormalizePagination(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}
	return page, pageSize
}

// PageWindow 计算内存切片的分页窗口 [start, end)，越界时收敛到合法范围
func PageWindow(total, page, pageSize int) (int, int) {
	start := (page - 1) * pageSize
	if start > total {
		start = total
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return start, end
}

// BuildPagination 组装分页响应信息
func BuildPagination(page, pageSize int, total int64) response.Pagination {
	var totalPage int64
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return response.Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}
