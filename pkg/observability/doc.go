/*
Package observability exposes heap accounting to monitoring systems.

HeapCollector implements prometheus.Collector over value.Heap statistics,
so live values, live cells, allocations, frees, map resizes and refused
allocations can be scraped while the heap is in use.
*/
package observability
