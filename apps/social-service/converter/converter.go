package converter

import (
	"gofilm-social/apps/social-service/model"
)

// Converter 转换器，提供Model到API响应的转换
type Converter struct{}

// NewConverter 创建转换器实例
func NewConverter() *Converter {
	return &Converter{}
}

// UserResponse 用户响应
type UserResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Login    string `json:"login"`
	Name     string `json:"name"`
	Birthday string `json:"birthday"`
}

// GenreResponse 类型响应
type GenreResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// DirectorResponse 导演响应
type DirectorResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// MpaRatingResponse 分级响应
type MpaRatingResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FilmResponse 电影响应
type FilmResponse struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Description string             `json:"description"`
	ReleaseDate string             `json:"release_date"`
	Duration    int32              `json:"duration"`
	Mpa         string             `json:"mpa"`
	Genres      []GenreResponse    `json:"genres"`
	Directors   []DirectorResponse `json:"directors"`
	LikeCount   int64              `json:"like_count"`
}

// ReviewResponse 影评响应
type ReviewResponse struct {
	ID         int64  `json:"review_id"`
	Content    string `json:"content"`
	IsPositive bool   `json:"is_positive"`
	UserID     int64  `json:"user_id"`
	FilmID     int64  `json:"film_id"`
	Useful     int64  `json:"useful"`
}

// FeedEventResponse 动态事件响应
type FeedEventResponse struct {
	EventID   int64  `json:"event_id"`
	UserID    int64  `json:"user_id"`
	EventType string `json:"event_type"`
	Operation string `json:"operation"`
	EntityID  int64  `json:"entity_id"`
	Timestamp int64  `json:"timestamp"`
}

const dateLayout = "2006-01-02"

// UserToResponse 将用户Model转换为响应
func (c *Converter) UserToResponse(user *model.User) *UserResponse {
	if user == nil {
		return nil
	}
	birthday := ""
	if !user.Birthday.IsZero() {
		birthday = user.Birthday.Format(dateLayout)
	}
	return &UserResponse{
		ID:       user.ID,
		Email:    user.Email,
		Login:    user.Login,
		Name:     user.Name,
		Birthday: birthday,
	}
}

// UsersToResponse 将用户Model列表转换为响应列表
func (c *Converter) UsersToResponse(users []*model.User) []*UserResponse {
	result := make([]*UserResponse, 0, len(users))
	for _, user := range users {
		if resp := c.UserToResponse(user); resp != nil {
			result = append(result, resp)
		}
	}
	return result
}

// FilmSummaryToResponse 将电影汇总转换为响应
func (c *Converter) FilmSummaryToResponse(summary *model.FilmSummary) *FilmResponse {
	if summary == nil {
		return nil
	}

	genres := make([]GenreResponse, 0, len(summary.Genres))
	for _, g := range summary.Genres {
		genres = append(genres, GenreResponse{ID: g.ID, Name: g.Name})
	}
	directors := make([]DirectorResponse, 0, len(summary.Directors))
	for _, d := range summary.Directors {
		directors = append(directors, DirectorResponse{ID: d.ID, Name: d.Name})
	}

	return &FilmResponse{
		ID:          summary.ID,
		Name:        summary.Name,
		Description: summary.Description,
		ReleaseDate: summary.ReleaseDate.Format(dateLayout),
		Duration:    summary.Duration,
		Mpa:         summary.Mpa,
		Genres:      genres,
		Directors:   directors,
		LikeCount:   summary.LikeCount,
	}
}

// FilmSummariesToResponse 将电影汇总列表转换为响应列表
func (c *Converter) FilmSummariesToResponse(summaries []*model.FilmSummary) []*FilmResponse {
	result := make([]*FilmResponse, 0, len(summaries))
	for _, summary := range summaries {
		if resp := c.FilmSummaryToResponse(summary); resp != nil {
			result = append(result, resp)
		}
	}
	return result
}

// GenresToResponse 将类型Model列表转换为响应列表
func (c *Converter) GenresToResponse(genres []*model.Genre) []*GenreResponse {
	result := make([]*GenreResponse, 0, len(genres))
	for _, g := range genres {
		result = append(result, &GenreResponse{ID: g.ID, Name: g.Name})
	}
	return result
}

// MpaRatingsToResponse 将分级Model列表转换为响应列表
func (c *Converter) MpaRatingsToResponse(ratings []*model.MpaRating) []*MpaRatingResponse {
	result := make([]*MpaRatingResponse, 0, len(ratings))
	for _, r := range ratings {
		result = append(result, &MpaRatingResponse{ID: r.ID, Name: r.Name})
	}
	return result
}

// ReviewToResponse 将影评Model转换为响应
func (c *Converter) ReviewToResponse(review *model.Review) *ReviewResponse {
	if review == nil {
		return nil
	}
	return &ReviewResponse{
		ID:         review.ID,
		Content:    review.Content,
		IsPositive: review.IsPositive,
		UserID:     review.UserID,
		FilmID:     review.FilmID,
		Useful:     review.Useful,
	}
}

// ReviewsToResponse 将影评Model列表转换为响应列表
func (c *Converter) ReviewsToResponse(reviews []*model.Review) []*ReviewResponse {
	result := make([]*ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		if resp := c.ReviewToResponse(review); resp != nil {
			result = append(result, resp)
		}
	}
	return result
}

// FeedEventToResponse 将动态事件Model转换为响应
func (c *Converter) FeedEventToResponse(event *model.FeedEvent) *FeedEventResponse {
	if event == nil {
		return nil
	}
	return &FeedEventResponse{
		EventID:   event.ID,
		UserID:    event.UserID,
		EventType: event.EventType,
		Operation: event.Operation,
		EntityID:  event.EntityID,
		Timestamp: event.Timestamp,
	}
}

// FeedEventsToResponse 将动态事件Model列表转换为响应列表
func (c *Converter) FeedEventsToResponse(events []*model.FeedEvent) []*FeedEventResponse {
	result := make([]*FeedEventResponse, 0, len(events))
	for _, event := range events {
		if resp := c.FeedEventToResponse(event); resp != nil {
			result = append(result, resp)
		}
	}
	return result
}
