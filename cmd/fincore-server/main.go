// Command fincore-server is the HTTP delivery wrapper around the fincore
// engine (SPEC_FULL.md A.4), adapted from the teacher's root main.go: a gin
// router with request-scoped logging and JSON binding/validation, plus an
// HTML balance/interest chart endpoint.
package main

import (
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/inco-org/fincore"
	"github.com/inco-org/fincore/config"
	"github.com/inco-org/fincore/logger"
)

// scheduleRequest is the JSON body every POST /schedules/{mode}/... endpoint
// accepts, validated with go-playground/validator (SPEC_FULL.md A.4).
type scheduleRequest struct {
	Principal   string  `json:"principal" binding:"required"`
	APY         string  `json:"apy" binding:"required"`
	ZeroDate    string  `json:"zero_date" binding:"required"`
	Term        int     `json:"term" binding:"required,min=1"`
	Anniversary *string `json:"anniversary,omitempty"`
}

func (r scheduleRequest) parse() (decimal.Decimal, decimal.Decimal, time.Time, *time.Time, error) {
	principal, err := decimal.NewFromString(r.Principal)
	if err != nil {
		return decimal.Zero, decimal.Zero, time.Time{}, nil, err
	}
	apy, err := decimal.NewFromString(r.APY)
	if err != nil {
		return decimal.Zero, decimal.Zero, time.Time{}, nil, err
	}
	zeroDate, err := time.Parse("2006-01-02", r.ZeroDate)
	if err != nil {
		return decimal.Zero, decimal.Zero, time.Time{}, nil, err
	}
	var anniversary *time.Time
	if r.Anniversary != nil {
		a, err := time.Parse("2006-01-02", *r.Anniversary)
		if err != nil {
			return decimal.Zero, decimal.Zero, time.Time{}, nil, err
		}
		anniversary = &a
	}
	return principal, apy, zeroDate, anniversary, nil
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("request_id", uuid.NewString())
		c.Next()
	}
}

func newRouter(log *logger.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID())
	r.Use(func(c *gin.Context) {
		c.Next()
		log.Info("request handled",
			"request_id", c.GetString("request_id"),
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
		)
	})

	r.POST("/schedules/bullet/payments", bulletPaymentsHandler)
	r.POST("/schedules/bullet/daily-returns", bulletDailyReturnsHandler)
	r.POST("/schedules/jm/payments", jmPaymentsHandler)
	r.POST("/schedules/price/payments", pricePaymentsHandler)
	r.GET("/schedules/bullet/report", bulletReportHandler)
	return r
}

func bulletPaymentsHandler(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	principal, apy, zeroDate, anniversary, err := req.parse()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := fincore.GetBulletPayments(fincore.BulletRequest{
		ZeroDate: zeroDate, Anniversary: anniversary, Term: req.Term,
		Principal: principal, APY: apy, Cap: fincore.Cap360,
	})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

func bulletDailyReturnsHandler(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	principal, apy, zeroDate, anniversary, err := req.parse()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := fincore.GetBulletDailyReturns(fincore.BulletRequest{
		ZeroDate: zeroDate, Anniversary: anniversary, Term: req.Term,
		Principal: principal, APY: apy, Cap: fincore.Cap360,
	})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

func jmPaymentsHandler(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	principal, apy, zeroDate, anniversary, err := req.parse()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := fincore.GetJMPayments(fincore.JMRequest{
		ZeroDate: zeroDate, Anniversary: anniversary, Term: req.Term,
		Principal: principal, APY: apy, Cap: fincore.Cap30360,
	})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

func pricePaymentsHandler(c *gin.Context) {
	var req scheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	principal, apy, zeroDate, anniversary, err := req.parse()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	out, err := fincore.GetPricePayments(fincore.PriceRequest{
		ZeroDate: zeroDate, Anniversary: anniversary, Term: req.Term,
		Principal: principal, APY: apy, Cap: fincore.Cap30360,
	})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

func boolPtr(b bool) *bool { return &b }

// bulletReportHandler renders an HTML balance/interest chart for a fixed
// 12-installment Bullet schedule via query params principal/apy/zero_date, reusing
// go-echarts the same way the pack's realestate financing tool does.
func bulletReportHandler(c *gin.Context) {
	principal, _ := decimal.NewFromString(c.DefaultQuery("principal", "1000"))
	apy, _ := decimal.NewFromString(c.DefaultQuery("apy", "0.10"))
	zeroDate, err := time.Parse("2006-01-02", c.DefaultQuery("zero_date", "2022-01-01"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	out, err := fincore.GetBulletDailyReturns(fincore.BulletRequest{
		ZeroDate: zeroDate, Term: 12, Principal: principal, APY: apy, Cap: fincore.Cap360,
	})
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	var xAxis []string
	var balanceArr []opts.LineData
	var interestArr []opts.LineData
	for _, row := range out {
		xAxis = append(xAxis, row.Date.Format("2006-01-02"))
		balanceF, _ := row.Bal.Float64()
		interestF, _ := row.Value.Float64()
		balanceArr = append(balanceArr, opts.LineData{Value: balanceF})
		interestArr = append(interestArr, opts.LineData{Value: interestF})
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Bullet schedule balance/interest",
			Subtitle: principal.String() + " @ " + apy.String() + " from " + zeroDate.Format("2006-01-02"),
		}),
		charts.WithInitializationOpts(opts.Initialization{Width: "1200px", Height: "600px"}),
		charts.WithToolboxOpts(opts.Toolbox{Show: boolPtr(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: boolPtr(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: boolPtr(true)}),
	)
	line.SetXAxis(xAxis).
		AddSeries("balance", balanceArr).
		AddSeries("daily interest", interestArr)

	c.Status(http.StatusOK)
	c.Header("Content-Type", "text/html; charset=utf-8")
	_ = line.Render(c.Writer)
}

func main() {
	cfg, err := config.ReadConfig()
	if err != nil {
		cfg.LogDir = "./logs"
		cfg.ServerAddr = ":8080"
	}

	log, err := logger.NewLogger(cfg.LogDir)
	if err != nil {
		os.Exit(1)
	}

	r := newRouter(log)
	log.Info("fincore-server starting", "addr", cfg.ServerAddr)
	if err := r.Run(cfg.ServerAddr); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}
