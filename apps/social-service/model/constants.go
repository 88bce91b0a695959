package model

// 默认配置
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
	DefaultTopLimit = 10
)

// 事件类型
const (
	EventTypeLike   = "LIKE"   // 点赞
	EventTypeReview = "REVIEW" // 影评
	EventTypeFriend = "FRIEND" // 好友
)

// 事件操作
const (
	OperationAdd    = "ADD"    // 新增
	OperationRemove = "REMOVE" // 移除
	OperationUpdate = "UPDATE" // 更新
)

// 排序模式
const (
	SortByYear  = "year"  // 按上映年份升序
	SortByLikes = "likes" // 按点赞数降序
)

// Redis缓存键前缀
const (
	CacheKeyFilmStats  = "film:stats"  // 电影点赞统计缓存
	CacheKeyFriendList = "friend:list" // 好友列表缓存
	CacheKeyTopFilms   = "film:top"    // 热门电影缓存
)

// 缓存过期时间（秒）
const (
	CacheExpireStats      = 300 // 统计缓存5分钟
	CacheExpireFriendList = 600 // 好友列表缓存10分钟
)

// Kafka主题
const (
	TopicSocialEvents = "film-social-events"
)

// Redis发布频道前缀
const (
	FeedChannelPrefix = "feed:events:"
)

// ElasticSearch索引
const (
	FilmIndexName = "films"
)

// 有效的事件类型列表
var ValidEventTypes = []string{
	EventTypeLike,
	EventTypeReview,
	EventTypeFriend,
}

// 有效的事件操作列表
var ValidOperations = []string{
	OperationAdd,
	OperationRemove,
	OperationUpdate,
}
