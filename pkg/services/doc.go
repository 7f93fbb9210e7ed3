// Package services loads service definitions from YAML catalog
// documents and turns them into ready-to-run authorization flows.
//
// A catalog document lists services by name, each declaring its
// protocol and endpoint block:
//
//	services:
//	  - name: twitter
//	    protocol: oauth1
//	    callback_url: myapp://callback
//	    oauth1:
//	      consumer_key: ck
//	      consumer_secret: cs
//	      request_token_url: https://api.twitter.com/oauth/request_token
//	      authorize_url: https://api.twitter.com/oauth/authorize
//	      access_token_url: https://api.twitter.com/oauth/access_token
//	  - name: github
//	    protocol: oauth2-code
//	    callback_url: http://127.0.0.1:8723/callback
//	    oauth2:
//	      client_id: id
//	      client_secret: secret
//	      auth_url: https://github.com/login/oauth/authorize
//	      token_url: https://github.com/login/oauth/access_token
//
// Load definitions once with LoadFile, or keep a Catalog and let Watch
// pick up edits to the document while the process runs:
//
//	catalog := services.NewCatalog()
//	go catalog.Watch(ctx, "services.yaml")
//
//	def, err := catalog.Get("twitter")
//	if err != nil {
//		return err
//	}
//	flow, err := def.NewFlow(services.FlowOptions{})
package services
