package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LegacyOrders serves the JSON array stored at path, or [] when the file is
// missing or does not hold an array. It never touches the database.
func LegacyOrders(path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, readSnapshot(path))
	}
}

func readSnapshot(path string) []interface{} {
	empty := []interface{}{}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			zap.S().Warnf("⚠️ cannot read order snapshot %s: %v", path, err)
		}
		return empty
	}
	var orders []interface{}
	if err := json.Unmarshal(data, &orders); err != nil || orders == nil {
		zap.S().Warnf("⚠️ order snapshot %s is not a JSON array", path)
		return empty
	}
	return orders
}
