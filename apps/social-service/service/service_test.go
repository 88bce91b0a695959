package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"gofilm-social/apps/social-service/model"
	"gofilm-social/pkg/logger"
	"gofilm-social/pkg/snowflake"
)

func init() {
	if err := snowflake.InitGlobalSnowflake(1); err != nil {
		panic(err)
	}
}

// fakeStore 内存版DAO实现，覆盖除检索外的全部数据访问接口
type fakeStore struct {
	mu            sync.Mutex
	users         map[int64]*model.User
	nextUserID    int64
	films         map[int64]*model.Film
	nextFilmID    int64
	filmGenres    map[int64][]int64
	filmDirectors map[int64][]int64
	genres        map[int64]*model.Genre
	nextGenreID   int64
	directors     map[int64]*model.Director
	nextDirID     int64
	ratings       map[int64]*model.MpaRating
	nextRatingID  int64
	friends       map[int64]map[int64]bool
	likes         map[int64]map[int64]bool
	counts        map[int64]int64
	events        []*model.FeedEvent
	reviews       map[int64]*model.Review
	nextReviewID  int64
	votes         map[[2]int64]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:         make(map[int64]*model.User),
		films:         make(map[int64]*model.Film),
		filmGenres:    make(map[int64][]int64),
		filmDirectors: make(map[int64][]int64),
		genres:        make(map[int64]*model.Genre),
		directors:     make(map[int64]*model.Director),
		ratings:       make(map[int64]*model.MpaRating),
		friends:       make(map[int64]map[int64]bool),
		likes:         make(map[int64]map[int64]bool),
		counts:        make(map[int64]int64),
		reviews:       make(map[int64]*model.Review),
		votes:         make(map[[2]int64]bool),
	}
}

func newTestService(store *fakeStore) *Service {
	return NewService(store, store, store, store, store, nil, nil, nil, logger.GetLogger())
}

// ---- 测试数据构造 ----

func (f *fakeStore) addUser(login string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextUserID++
	id := f.nextUserID
	f.users[id] = &model.User{
		ID:    id,
		Email: login + "@example.com",
		Login: login,
		Name:  login,
	}
	return id
}

func (f *fakeStore) addFilm(name string, year int, genreIDs, directorIDs []int64) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextFilmID++
	id := f.nextFilmID
	f.films[id] = &model.Film{
		ID:          id,
		Name:        name,
		ReleaseDate: time.Date(year, 6, 1, 0, 0, 0, 0, time.UTC),
		Duration:    120,
	}
	f.filmGenres[id] = genreIDs
	f.filmDirectors[id] = directorIDs
	return id
}

func (f *fakeStore) addDirector(name string) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextDirID++
	f.directors[f.nextDirID] = &model.Director{ID: f.nextDirID, Name: name}
	return f.nextDirID
}

// ---- FriendDAO ----

func (f *fakeStore) AddFriend(ctx context.Context, userID, friendID int64, event *model.FeedEvent) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.friends[userID][friendID] {
		return false, nil
	}
	if f.friends[userID] == nil {
		f.friends[userID] = make(map[int64]bool)
	}
	if f.friends[friendID] == nil {
		f.friends[friendID] = make(map[int64]bool)
	}
	f.friends[userID][friendID] = true
	f.friends[friendID][userID] = true
	f.events = append(f.events, event)
	return true, nil
}

func (f *fakeStore) RemoveFriend(ctx context.Context, userID, friendID int64, event *model.FeedEvent) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.friends[userID][friendID] {
		return false, nil
	}
	delete(f.friends[userID], friendID)
	delete(f.friends[friendID], userID)
	f.events = append(f.events, event)
	return true, nil
}

func (f *fakeStore) FriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.friends[userID]))
	for id := range f.friends[userID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// ---- LikeDAO ----

func (f *fakeStore) AddLike(ctx context.Context, userID, filmID int64, event *model.FeedEvent) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.likes[userID][filmID] {
		return false, nil
	}
	if f.likes[userID] == nil {
		f.likes[userID] = make(map[int64]bool)
	}
	f.likes[userID][filmID] = true
	f.counts[filmID]++
	f.events = append(f.events, event)
	return true, nil
}

func (f *fakeStore) RemoveLike(ctx context.Context, userID, filmID int64, event *model.FeedEvent) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.likes[userID][filmID] {
		return false, nil
	}
	delete(f.likes[userID], filmID)
	f.counts[filmID]--
	f.events = append(f.events, event)
	return true, nil
}

func (f *fakeStore) LikedFilmIDs(ctx context.Context, userID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.likes[userID]))
	for id := range f.likes[userID] {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeStore) UserIDsWhoLiked(ctx context.Context, filmID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0)
	for userID, films := range f.likes {
		if films[filmID] {
			ids = append(ids, userID)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

func (f *fakeStore) AllLikes(ctx context.Context) (map[int64][]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make(map[int64][]int64)
	for userID, films := range f.likes {
		for filmID := range films {
			result[userID] = append(result[userID], filmID)
		}
		sort.Slice(result[userID], func(i, j int) bool { return result[userID][i] < result[userID][j] })
	}
	return result, nil
}

func (f *fakeStore) LikeCounts(ctx context.Context, filmIDs []int64) (map[int64]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make(map[int64]int64, len(filmIDs))
	for _, id := range filmIDs {
		result[id] = f.counts[id]
	}
	return result, nil
}

// ---- FeedDAO ----

func (f *fakeStore) AppendEvent(ctx context.Context, event *model.FeedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

func (f *fakeStore) EventsByUser(ctx context.Context, userID int64) ([]*model.FeedEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	events := make([]*model.FeedEvent, 0)
	for _, e := range f.events {
		if e.UserID == userID {
			events = append(events, e)
		}
	}
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Timestamp != events[j].Timestamp {
			return events[i].Timestamp < events[j].Timestamp
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}

// ---- CatalogDAO ----

func (f *fakeStore) CreateUser(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextUserID++
	user.ID = f.nextUserID
	f.users[user.ID] = user
	return nil
}

func (f *fakeStore) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[userID]
	if !ok {
		return nil, model.ErrNotFound
	}
	return user, nil
}

func (f *fakeStore) ListUsers(ctx context.Context) ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.users))
	for id := range f.users {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	users := make([]*model.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, f.users[id])
	}
	return users, nil
}

func (f *fakeStore) UserExists(ctx context.Context, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.users[userID]
	return ok, nil
}

func (f *fakeStore) CreateFilm(ctx context.Context, film *model.Film, genreIDs, directorIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextFilmID++
	film.ID = f.nextFilmID
	f.films[film.ID] = film
	f.filmGenres[film.ID] = genreIDs
	f.filmDirectors[film.ID] = directorIDs
	return nil
}

func (f *fakeStore) UpdateFilm(ctx context.Context, film *model.Film, genreIDs, directorIDs []int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.films[film.ID]; !ok {
		return model.ErrNotFound
	}
	f.films[film.ID] = film
	f.filmGenres[film.ID] = genreIDs
	f.filmDirectors[film.ID] = directorIDs
	return nil
}

func (f *fakeStore) GetFilm(ctx context.Context, filmID int64) (*model.Film, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	film, ok := f.films[filmID]
	if !ok {
		return nil, model.ErrNotFound
	}
	return film, nil
}

func (f *fakeStore) ListFilms(ctx context.Context, genreID int64, year int32) ([]*model.Film, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.films))
	for id := range f.films {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	films := make([]*model.Film, 0)
	for _, id := range ids {
		film := f.films[id]
		if year > 0 && int32(film.ReleaseDate.Year()) != year {
			continue
		}
		if genreID > 0 {
			found := false
			for _, gid := range f.filmGenres[id] {
				if gid == genreID {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		films = append(films, film)
	}
	return films, nil
}

func (f *fakeStore) FilmsByDirector(ctx context.Context, directorID int64) ([]*model.Film, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.films))
	for id := range f.films {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	films := make([]*model.Film, 0)
	for _, id := range ids {
		for _, did := range f.filmDirectors[id] {
			if did == directorID {
				films = append(films, f.films[id])
				break
			}
		}
	}
	return films, nil
}

func (f *fakeStore) FilmSummaries(ctx context.Context, filmIDs []int64) (map[int64]*model.FilmSummary, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	result := make(map[int64]*model.FilmSummary, len(filmIDs))
	for _, id := range filmIDs {
		film, ok := f.films[id]
		if !ok {
			continue
		}
		result[id] = &model.FilmSummary{
			ID:          film.ID,
			Name:        film.Name,
			Description: film.Description,
			ReleaseDate: film.ReleaseDate,
			Duration:    film.Duration,
			Genres:      []model.Genre{},
			Directors:   []model.Director{},
		}
	}
	return result, nil
}

func (f *fakeStore) CreateGenre(ctx context.Context, genre *model.Genre) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextGenreID++
	genre.ID = f.nextGenreID
	f.genres[genre.ID] = genre
	return nil
}

func (f *fakeStore) ListGenres(ctx context.Context) ([]*model.Genre, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	genres := make([]*model.Genre, 0, len(f.genres))
	for _, g := range f.genres {
		genres = append(genres, g)
	}
	sort.Slice(genres, func(i, j int) bool { return genres[i].ID < genres[j].ID })
	return genres, nil
}

func (f *fakeStore) CreateDirector(ctx context.Context, director *model.Director) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextDirID++
	director.ID = f.nextDirID
	f.directors[director.ID] = director
	return nil
}

func (f *fakeStore) ListDirectors(ctx context.Context) ([]*model.Director, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	directors := make([]*model.Director, 0, len(f.directors))
	for _, d := range f.directors {
		directors = append(directors, d)
	}
	sort.Slice(directors, func(i, j int) bool { return directors[i].ID < directors[j].ID })
	return directors, nil
}

func (f *fakeStore) DirectorExists(ctx context.Context, directorID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.directors[directorID]
	return ok, nil
}

func (f *fakeStore) CreateMpaRating(ctx context.Context, rating *model.MpaRating) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextRatingID++
	rating.ID = f.nextRatingID
	f.ratings[rating.ID] = rating
	return nil
}

func (f *fakeStore) ListMpaRatings(ctx context.Context) ([]*model.MpaRating, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ratings := make([]*model.MpaRating, 0, len(f.ratings))
	for _, r := range f.ratings {
		ratings = append(ratings, r)
	}
	sort.Slice(ratings, func(i, j int) bool { return ratings[i].ID < ratings[j].ID })
	return ratings, nil
}

// ---- ReviewDAO ----

func (f *fakeStore) CreateReview(ctx context.Context, review *model.Review, event *model.FeedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextReviewID++
	review.ID = f.nextReviewID
	f.reviews[review.ID] = review
	event.EntityID = review.ID
	f.events = append(f.events, event)
	return nil
}

func (f *fakeStore) GetReview(ctx context.Context, reviewID int64) (*model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	review, ok := f.reviews[reviewID]
	if !ok {
		return nil, model.ErrNotFound
	}
	copied := *review
	return &copied, nil
}

func (f *fakeStore) UpdateReview(ctx context.Context, review *model.Review, event *model.FeedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.reviews[review.ID]
	if !ok {
		return model.ErrNotFound
	}
	existing.Content = review.Content
	existing.IsPositive = review.IsPositive
	f.events = append(f.events, event)
	return nil
}

func (f *fakeStore) DeleteReview(ctx context.Context, reviewID int64, event *model.FeedEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.reviews[reviewID]; !ok {
		return model.ErrNotFound
	}
	delete(f.reviews, reviewID)
	for key := range f.votes {
		if key[0] == reviewID {
			delete(f.votes, key)
		}
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakeStore) ListReviews(ctx context.Context, filmID int64, limit int) ([]*model.Review, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reviews := make([]*model.Review, 0)
	for _, r := range f.reviews {
		if filmID > 0 && r.FilmID != filmID {
			continue
		}
		copied := *r
		reviews = append(reviews, &copied)
	}
	sort.SliceStable(reviews, func(i, j int) bool {
		if reviews[i].Useful != reviews[j].Useful {
			return reviews[i].Useful > reviews[j].Useful
		}
		return reviews[i].ID < reviews[j].ID
	})
	if len(reviews) > limit {
		reviews = reviews[:limit]
	}
	return reviews, nil
}

func (f *fakeStore) AddVote(ctx context.Context, reviewID, userID int64, isLike bool) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	review, ok := f.reviews[reviewID]
	if !ok {
		return false, model.ErrNotFound
	}
	key := [2]int64{reviewID, userID}
	existing, voted := f.votes[key]
	if voted {
		if existing == isLike {
			return false, nil
		}
		f.votes[key] = isLike
		if isLike {
			review.Useful += 2
		} else {
			review.Useful -= 2
		}
		return true, nil
	}
	f.votes[key] = isLike
	if isLike {
		review.Useful++
	} else {
		review.Useful--
	}
	return true, nil
}

func (f *fakeStore) RemoveVote(ctx context.Context, reviewID, userID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	review, ok := f.reviews[reviewID]
	if !ok {
		return false, model.ErrNotFound
	}
	key := [2]int64{reviewID, userID}
	existing, voted := f.votes[key]
	if !voted {
		return false, nil
	}
	delete(f.votes, key)
	if existing {
		review.Useful--
	} else {
		review.Useful++
	}
	return true, nil
}
