package ioc

// InitApp 手工组装：analytics 先起，export 挂在它后面，
// ingest 再把 export 当成同步收尾动作
func InitApp() (*App, error) {
	db := InitDB()
	q := InitMQ()
	ec := InitCache(InitRedis())
	client := InitCFClient()

	am := InitAnalyticsModule(db, ec)
	em := InitExportModule(am)
	im := InitIngestModule(db, q, client, em.Svc)

	return &App{
		Web:   initGinxServer(im.Hdl, am.Hdl),
		Crons: initCronJobs(am.LabelJob),
		Jobs:  initJobs(im, em),
	}, nil
}
