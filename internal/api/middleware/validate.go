// validate.go — валидация входящих запросов по OpenAPI контракту.
// Контракт загружается из сгенерированного пакета (generated.GetSwagger),
// запросы сверяются со схемами через kin-openapi: типы, диапазоны,
// обязательные поля. Невалидный запрос отклоняется с 422 до хендлера.
package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers/gorillamux"

	apierrors "github.com/MojiburRahaman/heart-disease-prediction-api/internal/api/errors"
)

// OpenAPIValidator возвращает middleware, валидирующий запросы по doc.
// Пути вне контракта (например /openapi.json) пропускаются без проверки.
func OpenAPIValidator(doc *openapi3.T) (func(http.Handler) http.Handler, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			route, pathParams, err := router.FindRoute(r)
			if err != nil {
				// Путь вне контракта: решение остаётся за роутером приложения
				next.ServeHTTP(w, r)
				return
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    r,
				PathParams: pathParams,
				Route:      route,
				Options: &openapi3filter.Options{
					// Аутентификацию выполняет JWT middleware, не валидатор
					AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
				},
			}

			if err := openapi3filter.ValidateRequest(r.Context(), input); err != nil {
				apierrors.ValidationError(w, validationMessage(err))
				return
			}

			// Тело запроса восстановлено валидатором, хендлер читает его заново
			next.ServeHTTP(w, r)
		})
	}, nil
}

// validationMessage приводит ошибку kin-openapi к однострочному описанию
// для тела ответа.
func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		err = reqErr
	}

	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	msg = strings.TrimSuffix(strings.TrimSpace(msg), ":")
	if msg == "" {
		msg = "Запрос не соответствует OpenAPI контракту"
	}
	return msg
}
