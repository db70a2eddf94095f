package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LENAX/hotstar-scraper/pkg/core/scraper"
)

func TestCronScheduler_Register(t *testing.T) {
	eng := newTestEngine(t, newFakeScraper())
	cs := eng.CronScheduler()

	require.NoError(t, cs.Register("0 0 * * * *"))
	assert.Equal(t, "0 0 * * * *", cs.Expr())

	// 重复注册应替换已有表达式
	require.NoError(t, cs.Register("30 0 * * * *"))
	assert.Equal(t, "30 0 * * * *", cs.Expr())
}

func TestCronScheduler_RegisterInvalidExpr(t *testing.T) {
	eng := newTestEngine(t, newFakeScraper())
	cs := eng.CronScheduler()

	assert.Error(t, cs.Register(""), "空表达式应返回错误")
	assert.Error(t, cs.Register("not a cron expr"), "非法表达式应返回错误")
	assert.Error(t, cs.Register("* * * * *"), "五字段表达式应返回错误（要求秒级精度）")
}

func TestCronScheduler_Unregister(t *testing.T) {
	eng := newTestEngine(t, newFakeScraper())
	cs := eng.CronScheduler()

	assert.Error(t, cs.Unregister(), "未注册时取消应返回错误")

	require.NoError(t, cs.Register("0 0 * * * *"))
	require.NoError(t, cs.Unregister())
	assert.Empty(t, cs.Expr())
}

// TestCronScheduler_TriggersScrape 测试秒级调度触发全量抓取
func TestCronScheduler_TriggersScrape(t *testing.T) {
	fake := newFakeScraper()
	fake.episodes[testShowURL1] = &scraper.Episode{Title: "Episode 100", ShowName: "Pandian Stores 2"}

	eng := newTestEngine(t, fake)
	ctx := context.Background()

	_, err := eng.RegisterShow(ctx, testShowURL1)
	require.NoError(t, err)

	cs := eng.CronScheduler()
	require.NoError(t, cs.Register("* * * * * *")) // 每秒触发
	cs.Start()
	defer cs.Stop()

	require.Eventually(t, func() bool {
		return fake.callCount() >= 1
	}, 5*time.Second, 50*time.Millisecond, "定时触发后应抓取启用剧集")
}
