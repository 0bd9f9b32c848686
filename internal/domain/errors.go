package domain

import "errors"

// Error kinds returned by the ledger service
var (
	ErrAlreadyExists      = errors.New("account already exists")
	ErrAuthFailed         = errors.New("authentication failed")
	ErrNotFound           = errors.New("account not found")
	ErrInsufficientPoints = errors.New("insufficient points")
	ErrAlreadyHeld        = errors.New("kickboard already held")
	ErrNotHeld            = errors.New("kickboard not held")
	ErrConflict           = errors.New("account changed concurrently")
	ErrPasswordTooLong    = errors.New("password too long")
	ErrStore              = errors.New("store error")
)

// User facing messages
const (
	MsgAlreadyExists      = "이미 존재하는 사용자입니다."
	MsgAuthFailed         = "로그인 실패"
	MsgNotFound           = "존재하지 않는 사용자입니다."
	MsgInsufficientPoints = "포인트가 부족합니다."
	MsgAlreadyHeld        = "이미 킥보드를 구매했습니다."
	MsgNotHeld            = "킥보드를 구매하지 않았습니다."
	MsgConflict           = "다른 요청과 충돌했습니다. 다시 시도해 주세요."
	MsgPasswordTooLong    = "비밀번호가 너무 깁니다."
	MsgServerError        = "서버 에러 발생"
	MsgBadRequest         = "잘못된 요청입니다."
	MsgPurchased          = "킥보드가 구매되었습니다."
	MsgReturned           = "킥보드가 반납되었습니다."
)

// Message maps an error to the message shown to the caller
func Message(err error) string {
	switch {
	case errors.Is(err, ErrAlreadyExists):
		return MsgAlreadyExists
	case errors.Is(err, ErrAuthFailed):
		return MsgAuthFailed
	case errors.Is(err, ErrNotFound):
		return MsgNotFound
	case errors.Is(err, ErrInsufficientPoints):
		return MsgInsufficientPoints
	case errors.Is(err, ErrAlreadyHeld):
		return MsgAlreadyHeld
	case errors.Is(err, ErrNotHeld):
		return MsgNotHeld
	case errors.Is(err, ErrConflict):
		return MsgConflict
	case errors.Is(err, ErrPasswordTooLong):
		return MsgPasswordTooLong
	default:
		return MsgServerError
	}
}

// IsRuleError reports whether err is an expected business outcome rather than a fault
func IsRuleError(err error) bool {
	for _, e := range []error{ErrAlreadyExists, ErrAuthFailed, ErrNotFound, ErrInsufficientPoints, ErrAlreadyHeld, ErrNotHeld, ErrConflict, ErrPasswordTooLong} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
