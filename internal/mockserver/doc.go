// Package mockserver is a development stand-in for the services campuspass
// talks to: student verification, email codes and password reset.
//
// It keeps everything in memory. Student records come from a built-in seed
// or a YAML file, one-time codes are stored as bcrypt hashes in an expiring
// cache, and every email the backend would have sent is published to a dev
// inbox that clients can tail over a websocket at /ws/inbox.
//
// The server advertises itself over mDNS as "_campuspass._tcp" so the
// client's discover command can find it.
//
// # Routes
//
//	GET  /health
//	POST /api/v1/students/verify
//	POST /api/v1/students/confirm
//	POST /api/v1/email/verification
//	POST /api/v1/email/confirm
//	POST /api/v1/password/reset
//	GET  /ws/inbox
//
// # Students file
//
//	students:
//	  - full_name: Ada Obi
//	    student_id: "20231145"
//	    sch_level: "200"
//	    gender: female
//	    is_enrolled: true
package mockserver
