package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound kayıt bulunamadı.
	ErrNotFound = errors.New("kayıt bulunamadı")
	// ErrDuplicate aynı anahtara sahip kayıt zaten var.
	ErrDuplicate = errors.New("kayıt zaten mevcut")
	// ErrStoreUnavailable store'a erişilemedi (geçici hata, tekrar denenebilir).
	ErrStoreUnavailable = errors.New("store erişilemez")
)

// translateError gorm hatalarını repository hatalarına çevirir.
// Alttaki hata %w ile korunur, çağıran her ikisini de errors.Is ile sorgulayabilir.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
}
