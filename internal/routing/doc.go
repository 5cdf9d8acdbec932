// Package routing is a small in-process message-routing runtime.
//
// A Runtime owns named Contexts; each Context owns an ordered set of Routes.
// Every Route records per-exchange statistics (counts and processing times)
// and publishes them through a management entry in an mgmt.Registry:
//
//	routing:context=<context>,type=routes,name=<route id>
//
// with the attributes ExchangesTotal, ExchangesCompleted, ExchangesFailed,
// MinProcessingTime, MaxProcessingTime, MeanProcessingTime,
// TotalProcessingTime, LastProcessingTime (milliseconds), ContextId, RouteId
// and State.
//
// Workload drives routes with synthetic traffic described by a YAML
// topology so the monitor has something to watch.
package routing
