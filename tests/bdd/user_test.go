package bdd

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	userapp "video_sharing_service/internal/user/app"
	userdomain "video_sharing_service/internal/user/domain"
	"video_sharing_service/pkg/encrypt"
	"video_sharing_service/pkg/logger"

	"github.com/cucumber/godog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestFeatures(t *testing.T) {
	logger.SetNewNop()

	suite := godog.TestSuite{
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Paths:  []string{"./featureFiles"}, // 指向 feature 檔相對路徑
			Format: "pretty",
			Output: os.Stdout,
		},
	}

	if suite.Run() != 0 {
		t.Fail()
	}
}

// InitializeScenario 註冊 Gherkin 與 Step Definition 的對應
func InitializeScenario(s *godog.ScenarioContext) {
	s.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		resetWorld()
		return ctx, nil
	})

	s.Step(`^no user with username "([^"]*)" exists$`, noUserWithUsernameExists)
	s.Step(`^a user with username "([^"]*)" and password "([^"]*)" exists$`, aUserWithUsernameAndPasswordExists)
	s.Step(`^I register with username "([^"]*)", email "([^"]*)" and password "([^"]*)"$`, iRegisterWith)
	s.Step(`^the registration should "([^"]*)"$`, theRegistrationShould)
	s.Step(`^the error message should be "([^"]*)"$`, theErrorMessageShouldBe)
	s.Step(`^I attempt to login with username "([^"]*)" and password "([^"]*)"$`, iAttemptToLoginWith)
	s.Step(`^the login should "([^"]*)"$`, theLoginShould)
	s.Step(`^I should receive an access token and a refresh token$`, iShouldReceiveTokens)
}

// 記憶體版 UserRepository，步驟之間共用
type fakeUserRepo struct {
	users map[string]*userdomain.User // key 是 username
}

func (f *fakeUserRepo) Create(ctx context.Context, user *userdomain.User) error {
	f.users[user.Username] = user
	return nil
}

func (f *fakeUserRepo) FindOne(ctx context.Context, q *userdomain.UserQuery) (*userdomain.User, error) {
	for _, u := range f.users {
		if q.ID != nil && u.ID == *q.ID {
			return u, nil
		}
		if q.Username != nil && u.Username == *q.Username {
			return u, nil
		}
		if q.Email != nil && u.Email == *q.Email {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) FindByUsernameOrEmail(ctx context.Context, username, email string) (*userdomain.User, error) {
	for _, u := range f.users {
		if u.Username == username || u.Email == email {
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) UpdateAccount(ctx context.Context, id primitive.ObjectID, set *userdomain.AccountUpdate) (*userdomain.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			if set.FullName != nil {
				u.FullName = *set.FullName
			}
			if set.Email != nil {
				u.Email = *set.Email
			}
			if set.Avatar != nil {
				u.Avatar = *set.Avatar
			}
			if set.CoverImage != nil {
				u.CoverImage = *set.CoverImage
			}
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) UpdatePassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) error {
	for _, u := range f.users {
		if u.ID == id {
			u.Password = hashedPassword
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeUserRepo) SetRefreshToken(ctx context.Context, id primitive.ObjectID, refreshToken string) error {
	for _, u := range f.users {
		if u.ID == id {
			u.RefreshToken = refreshToken
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeUserRepo) RotateRefreshToken(ctx context.Context, id primitive.ObjectID, oldToken, newToken string) (*userdomain.User, error) {
	for _, u := range f.users {
		if u.ID == id && u.RefreshToken == oldToken {
			u.RefreshToken = newToken
			return u, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (f *fakeUserRepo) ClearRefreshToken(ctx context.Context, id primitive.ObjectID) error {
	for _, u := range f.users {
		if u.ID == id {
			u.RefreshToken = ""
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (f *fakeUserRepo) AddWatchHistory(ctx context.Context, userID, videoID primitive.ObjectID) error {
	return nil
}

func (f *fakeUserRepo) GetWatchHistory(ctx context.Context, userID primitive.ObjectID) ([]userdomain.WatchHistoryEntry, error) {
	return []userdomain.WatchHistoryEntry{}, nil
}

func (f *fakeUserRepo) GetChannelProfile(ctx context.Context, username string, viewerID primitive.ObjectID) (*userdomain.ChannelProfile, error) {
	return nil, mongo.ErrNoDocuments
}

// 記憶體版 MediaStore
type fakeMediaStore struct{}

func (f *fakeMediaStore) UploadFile(ctx context.Context, objectName, filePath, contentType string) error {
	return nil
}

func (f *fakeMediaStore) PublicURL(objectName string) string {
	return "http://minio.local/media/" + objectName
}

// 記憶體版 session 快取
type fakeSessionRepo struct {
	sessions map[string]userdomain.UserSession
}

func (f *fakeSessionRepo) Set(ctx context.Context, key string, value userdomain.UserSession, ttl time.Duration) error {
	f.sessions[key] = value
	return nil
}

func (f *fakeSessionRepo) Get(ctx context.Context, key string) (userdomain.UserSession, error) {
	s, ok := f.sessions[key]
	if !ok {
		return userdomain.UserSession{}, fmt.Errorf("session not found")
	}
	return s, nil
}

func (f *fakeSessionRepo) Del(ctx context.Context, key string) error {
	delete(f.sessions, key)
	return nil
}

// 測試世界狀態
var (
	repo        *fakeUserRepo
	uc          userapp.UserUseCase
	lastRegErr  error
	lastAuthErr error
	lastResult  *userdomain.AuthResult
)

func resetWorld() {
	repo = &fakeUserRepo{users: map[string]*userdomain.User{}}
	uc = userapp.NewUserUseCase(repo, &fakeMediaStore{},
		&fakeSessionRepo{sessions: map[string]userdomain.UserSession{}},
		"video_sharing_service", encrypt.HashPassword)
	lastRegErr = nil
	lastAuthErr = nil
	lastResult = nil
}

func noUserWithUsernameExists(username string) error {
	delete(repo.users, username)
	return nil
}

func aUserWithUsernameAndPasswordExists(username, password string) error {
	_, err := uc.Register(context.Background(), &userdomain.RegisterReq{
		Username:        username,
		Email:           username + "@example.com",
		FullName:        "BDD " + username,
		Password:        password,
		AvatarLocalPath: "/tmp/avatar.png",
	})
	return err
}

func iRegisterWith(username, email, password string) error {
	_, lastRegErr = uc.Register(context.Background(), &userdomain.RegisterReq{
		Username:        username,
		Email:           email,
		FullName:        "BDD " + username,
		Password:        password,
		AvatarLocalPath: "/tmp/avatar.png",
	})
	return nil
}

func theRegistrationShould(expected string) error {
	if expected == "succeed" && lastRegErr != nil {
		return fmt.Errorf("expected registration to succeed, got error: %v", lastRegErr)
	}
	if expected == "fail" && lastRegErr == nil {
		return fmt.Errorf("expected registration to fail, but it succeeded")
	}
	return nil
}

func theErrorMessageShouldBe(expected string) error {
	if lastRegErr == nil {
		return fmt.Errorf("expected error %q, got none", expected)
	}
	if lastRegErr.Error() != expected {
		return fmt.Errorf("expected error %q, got %q", expected, lastRegErr.Error())
	}
	return nil
}

func iAttemptToLoginWith(username, password string) error {
	lastResult, lastAuthErr = uc.Login(context.Background(), &userdomain.LoginReq{
		Username: username,
		Password: password,
	})
	return nil
}

func theLoginShould(expected string) error {
	if expected == "succeed" && lastAuthErr != nil {
		return fmt.Errorf("expected login to succeed, got error: %v", lastAuthErr)
	}
	if expected == "fail" && lastAuthErr == nil {
		return fmt.Errorf("expected login to fail, but it succeeded")
	}
	return nil
}

func iShouldReceiveTokens() error {
	if lastResult == nil || lastResult.AccessToken == "" || lastResult.RefreshToken == "" {
		return fmt.Errorf("expected access and refresh tokens")
	}
	return nil
}
