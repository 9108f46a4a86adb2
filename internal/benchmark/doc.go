// Package benchmark drives the CBC chainer through many iterations in bounded chunks.
//
// A Scheduler holds at most one job. Start creates it, ProcessChunk advances
// it by at most ChunkSize iterations and returns, Cancel ends it early. The
// host calls ProcessChunk from its own loop and services other input between
// calls, so nothing waits longer than one chunk:
//
//	for {
//	    status, err := sched.ProcessChunk()
//	    if status != benchmark.StatusRunning {
//	        break
//	    }
//	    // handle pending commands here
//	}
//
// The Scheduler is not safe for concurrent use. It has no goroutines and no
// locks; the host owns it on a single goroutine.
package benchmark
