package service

import "errors"

// 业务错误的哨兵值，controller 用 errors.Is 映射成 HTTP 状态码
var (
	// ErrInsufficientBalance 余额为 0，本次扫描被拒绝；不自动重试
	ErrInsufficientBalance = errors.New("no scans left")

	// ErrUnknownProduct 商品目录里没有这个 product_id，拒绝加余额
	ErrUnknownProduct = errors.New("unknown product id")

	// ErrForbidden 操作不属于自己的数据
	ErrForbidden = errors.New("no permission on this resource")
)
