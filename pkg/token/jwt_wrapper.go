package token

// 這些變數會在測試時被覆蓋
var (
	GenerateAccessTokenFunc  = GenerateAccessToken
	GenerateRefreshTokenFunc = GenerateRefreshToken
	ParseAccessTokenFunc     = ParseAccessToken
	ParseRefreshTokenFunc    = ParseRefreshToken
)

// GenerateAccessTokenWrapper 讓 usecase test mock 使用這個包裝函數
func GenerateAccessTokenWrapper(userID, issuer string) (string, error) {
	return GenerateAccessTokenFunc(userID, issuer)
}

// ParseAccessTokenWrapper 讓 middleware test mock 使用這個包裝函數
func ParseAccessTokenWrapper(t string) (*Claims, error) {
	return ParseAccessTokenFunc(t)
}
