// Package timezone keeps the hotel's local timezone.
//
// Stay dates arrive as calendar days ("2024-06-01") and are parsed in the
// hotel timezone so a night always means a hotel night, whatever the
// guest's own clock says.
//
//	timezone.Init("Asia/Jakarta")
//	checkIn, err := timezone.Parse("2006-01-02", "2024-06-01")
//	stamp := timezone.Format(timezone.Now(), "20060102")
//
// Until Init is called every helper works in UTC.
package timezone
