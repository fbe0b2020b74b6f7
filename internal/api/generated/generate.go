// Пакет generated — типы и chi-router, сгенерированные oapi-codegen
// по контракту api/openapi.yaml. Файл api.gen.go не редактируется
// вручную, пересоздание — make generate.
package generated

//go:generate go run github.com/oapi-codegen/oapi-codegen/v2/cmd/oapi-codegen@v2.4.1 -config ../../../api/oapi-codegen.yaml ../../../api/openapi.yaml
