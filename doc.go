// Project Structure Overview
/*
pixelarium-backend/
├── cmd/
│   └── server/
│       └── main.go
├── internal/
│   ├── config/
│   │   ├── config.go
│   │   └── database.go
│   ├── models/
│   │   ├── common.go
│   │   ├── user.go
│   │   ├── product.go
│   │   ├── order.go
│   │   └── order_status.go
│   ├── repository/
│   │   ├── repository.go
│   │   ├── store_gorm.go
│   │   ├── user_gorm.go
│   │   ├── product_gorm.go
│   │   └── order_gorm.go
│   ├── services/
│   │   ├── errors.go
│   │   ├── user_service.go
│   │   ├── product_service.go
│   │   ├── order_service.go
│   │   ├── catalog_cache.go
│   │   └── storage_service.go
│   ├── handlers/
│   │   ├── user.go
│   │   ├── product.go
│   │   ├── order.go
│   │   ├── reference.go
│   │   ├── dto.go
│   │   ├── params.go
│   │   └── errors.go
│   ├── middleware/
│   │   ├── cors.go
│   │   ├── rate_limit.go
│   │   ├── i18n.go
│   │   └── logging.go
│   ├── database/
│   │   └── connection.go
│   ├── i18n/
│   │   ├── i18n.go
│   │   ├── locales/
│   │   │   ├── en.json
│   │   │   └── es.json
│   │   └── keys.go
│   ├── utils/
│   │   ├── validator.go
│   │   ├── pagination.go
│   │   └── response.go
│   ├── router/
│   │   └── router.go
│   └── tests/
│       └── api_test.go
├── go.mod
└── go.sum
*/

// Package backend is the Pixelarium shop API: users, a product catalog and
// orders with price snapshots, served over HTTP by cmd/server.
package backend
