package model

import "errors"

// 业务错误分类，服务层用 fmt.Errorf("%w: ...") 包装后返回
var (
	// ErrNotFound 引用的用户、电影、导演或影评不存在
	ErrNotFound = errors.New("not found")

	// ErrInvalidRelation 好友操作中两个用户ID相同
	ErrInvalidRelation = errors.New("invalid relation")

	// ErrInvalidArgument 调用方输入非法（排序模式、非正数limit等）
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStorageUnavailable 底层存储不可用
	ErrStorageUnavailable = errors.New("storage unavailable")
)
