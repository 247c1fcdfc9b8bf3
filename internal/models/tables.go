package models

// Tables lists every persisted model in migration order.
var Tables = []interface{}{
	&User{},
	&Product{},
	&Order{},
	&OrderItem{},
}
