package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"catalog_admin/pkg/errs"
)

// flashCookie 一次性提示，列表页读取后清除
const flashCookie = "flash"

// renderError 按错误类型输出 {"code","message"}
func renderError(c *gin.Context, err error) {
	status := errs.StatusCode(err)
	_ = c.Error(err)
	c.JSON(status, gin.H{"code": status, "message": err.Error()})
}

// renderBindError 绑定/校验失败统一 400
func renderBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "参数错误: " + err.Error()})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"code": http.StatusBadRequest, "message": "无效的ID"})
		return 0, false
	}
	return id, true
}

// redirectWithFlash 303 跳转并留下一条提示，PUT/DELETE 之后也按 GET 跟随
func redirectWithFlash(c *gin.Context, location, message string) {
	c.SetCookie(flashCookie, message, 60, "/", "", false, true)
	c.Redirect(http.StatusSeeOther, location)
}

// popFlash 读取并清除提示
func popFlash(c *gin.Context) string {
	message, err := c.Cookie(flashCookie)
	if err != nil || message == "" {
		return ""
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	return message
}
