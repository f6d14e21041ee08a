package accounts

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// lightParams — дешёвые параметры, чтобы тесты не жгли 64 MB на каждый хеш.
var lightParams = Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32}

func TestPassword(t *testing.T) {
	Convey("Хеширование паролей Argon2id", t, func() {
		hash, err := HashPassword("correct horse", lightParams)
		So(err, ShouldBeNil)
		So(strings.HasPrefix(hash, "$argon2id$v=19$m=1024,t=1,p=1$"), ShouldBeTrue)

		Convey("Верный пароль проходит", func() {
			So(verifyPassword("correct horse", hash), ShouldBeTrue)
		})

		Convey("Неверный пароль не проходит", func() {
			So(verifyPassword("battery staple", hash), ShouldBeFalse)
		})

		Convey("Соль случайная", func() {
			other, err := HashPassword("correct horse", lightParams)
			So(err, ShouldBeNil)
			So(other, ShouldNotEqual, hash)
			So(verifyPassword("correct horse", other), ShouldBeTrue)
		})

		Convey("Битый хеш не проходит", func() {
			So(verifyPassword("correct horse", "plain"), ShouldBeFalse)
			So(verifyPassword("correct horse", "$bcrypt$v=19$m=1,t=1,p=1$aa$bb"), ShouldBeFalse)
		})
	})

	Convey("Токены сессий уникальны", t, func() {
		a, err := generateSecureToken()
		So(err, ShouldBeNil)
		b, _ := generateSecureToken()
		So(a, ShouldNotEqual, b)
		So(len(a), ShouldEqual, 43)
	})
}
