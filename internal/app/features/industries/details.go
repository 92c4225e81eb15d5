// internal/app/features/industries/details.go
package industries

// contentDetails holds the editorial copy for the industry pages. Challenge
// and solution descriptions are keyed by the item title as stored.
type contentDetails struct {
	Challenges  map[string]string
	Solutions   map[string]string
	Keywords    string
	Description string
}

var industryDetails = map[string]contentDetails{
	"healthcare-clinics": {
		Challenges: map[string]string{
			"Downtime during intake and charting": "System failures during patient check-in slow workflows and frustrate staff, causing delays in care delivery.",
			"Shared workstations with weak controls": "Multiple users sharing a single login create audit gaps and increase the risk of unauthorized access to PHI.",
			"Aging clinical endpoints": "Outdated desktops and peripherals lead to slow performance, security vulnerabilities, and incompatibility with modern EHR platforms.",
			"EHR vendor complexity": "Coordinating updates, integrations, and troubleshooting across EHR vendors requires specialized IT knowledge.",
			"HIPAA security pressure": "Clinics must meet strict compliance standards for data encryption, access logs, and breach notification protocols.",
		},
		Solutions: map[string]string{
			"Role-based access and MFA": "Enforce least-privilege access with multi-factor authentication to protect patient data at every login.",
			"Endpoint hardening and patching": "Automated patching and security baselines keep clinical devices compliant and protected against known threats.",
			"EHR workflow support": "Dedicated support for EHR systems including vendor coordination, update management, and performance optimization.",
			"Backup and recovery planning": "HIPAA-compliant backup strategies with regular recovery testing ensure business continuity after any incident.",
			"Documented escalation playbooks": "Pre-built response procedures so staff know exactly what to do during critical IT issues.",
		},
		Keywords:    "healthcare IT support, HIPAA compliant IT, medical office technology, EHR support, clinic IT services, Orange County healthcare IT",
		Description: "HIPAA-compliant managed IT services for healthcare clinics in Orange County. Secure EHR support, endpoint protection, and 24/7 monitoring for medical practices.",
	},
	"law-firms": {
		Challenges: map[string]string{
			"Case document bottlenecks": "Slow document retrieval and version conflicts waste billable hours and increase risk of filing errors.",
			"Risky file sharing practices": "Attorneys sharing sensitive case files via personal email or unencrypted drives create confidentiality breaches.",
			"Unmanaged remote access": "Lawyers working remotely without secured VPN or endpoint controls expose client data to interception.",
			"Weak backup visibility": "Without verified backups, a ransomware attack or hardware failure could mean permanent loss of case files.",
			"Phishing exposure": "Legal staff are prime phishing targets due to time pressure and high-value client information they handle.",
		},
		Solutions: map[string]string{
			"Access-controlled document workflows": "Secure document management with role-based permissions and audit trails for every file interaction.",
			"Endpoint and identity hardening": "Advanced endpoint protection and identity verification to prevent unauthorized access to client data.",
			"Secure remote collaboration": "Encrypted VPN, secure file sharing, and compliant video conferencing for remote legal work.",
			"Backup validation and continuity": "Regular backup testing and disaster recovery drills to ensure case files are always recoverable.",
			"Priority deadline support": "Expedited IT support aligned with court deadlines and filing schedules to prevent costly delays.",
		},
		Keywords:    "law firm IT support, legal technology services, legal document management, Orange County law firm IT",
		Description: "Secure IT solutions for law firms in Orange County. Confidential document management, endpoint protection, and priority support aligned with court deadlines.",
	},
	"construction-field-services": {
		Challenges: map[string]string{
			"Field device failures": "Tablets, phones, and ruggedized devices break down in harsh jobsite conditions, halting daily reports and communication.",
			"Unstable office-jobsite connectivity": "Poor network links between the main office and remote jobsites create delays in project management and file access.",
			"Inconsistent mobile security": "Field workers using personal devices without security policies expose project data to theft and malware.",
			"Shared credentials": "Teams sharing one login across multiple devices eliminates accountability and makes breach investigation impossible.",
			"Slow incident response": "When a device or system fails on a jobsite, delayed IT response causes idle crews and missed milestones.",
		},
		Solutions: map[string]string{
			"Mobile device standardization": "Uniform device configurations with remote management ensure every field worker has secure, reliable tools.",
			"Cloud collaboration hardening": "Secure cloud-based project management, file sharing, and communication tools accessible from any jobsite.",
			"Secure onboarding and offboarding": "Automated provisioning and de-provisioning of field worker accounts to prevent unauthorized access after turnover.",
			"Priority field support": "Rapid remote and onsite IT support prioritized for time-sensitive construction operations.",
			"Diagnostics and lifecycle planning": "Proactive device health monitoring and replacement scheduling to prevent unexpected equipment failures.",
		},
		Keywords:    "construction IT support, field services technology, jobsite IT solutions, Orange County construction IT",
		Description: "Reliable IT support for construction and field service companies in Orange County. Mobile device management, secure cloud access, and rapid onsite support.",
	},
	"manufacturing": {
		Challenges: map[string]string{
			"Production-impacting outages": "Unplanned IT downtime stops production lines, causing costly delays and missed delivery commitments.",
			"Aging infrastructure": "Legacy systems and outdated network equipment create bottlenecks and increase vulnerability to cyberattacks.",
			"Mixed legacy and modern systems": "Integrating older industrial control systems with modern cloud platforms introduces compatibility and security risks.",
			"Patch risk on live operations": "Applying security patches during production hours risks system crashes and unexpected behavior on critical equipment.",
			"Weak recovery testing": "Without regular disaster recovery drills, manufacturers cannot guarantee they can restore operations after a breach.",
		},
		Solutions: map[string]string{
			"Proactive monitoring with safe maintenance windows": "Continuous monitoring with scheduled maintenance during planned downtime to minimize production disruption.",
			"Endpoint and identity hardening": "Secure authentication and endpoint controls to protect both office workstations and production floor systems.",
			"Backup and recovery validation": "Regular backup testing with documented recovery procedures to verify data can be restored under real conditions.",
			"Vendor coordination for ERP and tooling": "Managing vendor relationships and updates for ERP systems, SCADA, and specialized manufacturing software.",
			"Monthly health reporting": "Detailed monthly reports on system health, security posture, and recommended actions for continuous improvement.",
		},
		Keywords:    "manufacturing IT support, production IT services, industrial cybersecurity, Orange County manufacturing IT",
		Description: "Managed IT services for manufacturers in Orange County. Minimize downtime, secure industrial systems, and maintain production continuity with proactive support.",
	},
	"retail-ecommerce": {
		Challenges: map[string]string{
			"POS outages during peak periods": "Point-of-sale failures during high-traffic periods directly impact revenue and customer satisfaction.",
			"Store connectivity inconsistencies": "Unreliable Wi-Fi and network connections across store locations create checkout delays and inventory sync issues.",
			"Payment endpoint risk": "Payment terminals and card readers that lack security updates are prime targets for data theft and skimming attacks.",
			"Checkout device failures": "Broken scanners, receipt printers, and card readers disrupt checkout flow and increase customer wait times.",
			"Multi-location visibility gaps": "Without centralized monitoring, issues at one store location may go undetected for hours or days.",
		},
		Solutions: map[string]string{
			"POS and network stabilization": "Redundant network configurations and proactive POS monitoring to ensure uninterrupted checkout operations.",
			"Endpoint security controls": "Hardened payment terminals and workstations with encryption, patching, and real-time threat detection.",
			"Store operations cloud workflows": "Cloud-based inventory, scheduling, and reporting tools accessible from any store location securely.",
			"Vendor escalation management": "Single point of contact for all technology vendor issues, from POS providers to payment processors.",
			"Backup and incident planning": "Retail-specific disaster recovery and incident response plans to minimize downtime and data loss.",
		},
		Keywords:    "retail IT support, eCommerce IT services, POS system support, Orange County retail IT",
		Description: "IT support for retail and eCommerce businesses in Orange County. POS system management, payment security, and multi-location technology support.",
	},
	"professional-services": {
		Challenges: map[string]string{
			"Tool sprawl and workflow friction": "Too many disconnected tools slow productivity and create data silos that make collaboration difficult.",
			"Manual onboarding and permissions": "Setting up new employees manually wastes IT hours and introduces security gaps from inconsistent permissions.",
			"Weak client-data safeguards": "Client-facing firms handling sensitive financial or business data need stronger encryption and access controls.",
			"Slow systems reducing billable output": "Laggy workstations and unreliable software directly reduce the hours professionals can bill to clients.",
			"Reactive support cycles": "Waiting until something breaks to call IT creates unpredictable costs and extended downtime.",
		},
		Solutions: map[string]string{
			"Cloud collaboration standardization": "Unified cloud platforms for document sharing, communication, and project management to eliminate tool sprawl.",
			"Automated user lifecycle controls": "Automated onboarding and offboarding with predefined role-based permissions for security and efficiency.",
			"Endpoint and account hardening": "Advanced endpoint security and account protection including MFA, conditional access, and encryption.",
			"Proactive device support": "Continuous monitoring and maintenance of workstations to prevent performance issues before they impact productivity.",
			"Workflow automation opportunities": "Identify and implement automations for repetitive tasks like reporting, invoicing, and data entry.",
		},
		Keywords:    "professional services IT, accounting firm IT support, consulting firm technology, Orange County professional IT",
		Description: "Scalable IT support for professional services firms in Orange County. Cloud collaboration, automated onboarding, and proactive device management.",
	},
	"nonprofits": {
		Challenges: map[string]string{
			"Limited internal IT capacity": "Most nonprofits lack dedicated IT staff, leaving technology decisions to people already stretched thin.",
			"Aging mixed devices": "Donated and outdated devices running different operating systems create support headaches and security risks.",
			"Donor-data security risk": "Donor information, payment details, and personal records require protection that many nonprofits are not equipped to provide.",
			"Volunteer access complexity": "Granting temporary access to volunteers while maintaining security boundaries is operationally challenging.",
			"Backup uncertainty": "Without verified backup processes, a hardware failure could mean losing years of organizational data.",
		},
		Solutions: map[string]string{
			"Right-sized managed coverage": "Managed IT services scaled to nonprofit budgets, no unnecessary features, just what your team actually needs.",
			"Secure cloud identity and collaboration": "Cloud-based identity management and collaboration tools with nonprofit licensing discounts where available.",
			"Device standardization": "Consistent device configurations and software deployments to reduce support complexity and improve security.",
			"Recovery readiness testing": "Regular backup verification and recovery drills to ensure your data is always recoverable.",
			"Strategic IT planning": "Technology roadmaps aligned with your mission and grant cycles to maximize impact per dollar spent.",
		},
		Keywords:    "nonprofit IT support, NGO technology services, nonprofit cybersecurity, Orange County nonprofit IT",
		Description: "Mission-focused IT support for nonprofits in Orange County. Budget-conscious managed services, donor data protection, and strategic technology planning.",
	},
	"real-estate-property-management": {
		Challenges: map[string]string{
			"Mobile device issues for agents": "Real estate agents depend on smartphones and tablets for showings, closings, and client communication, downtime costs deals.",
			"Fragmented file sharing": "Contracts, disclosures, and inspection reports scattered across personal drives and email threads create version confusion.",
			"Transaction-time support delays": "IT issues during a closing or contract signing can delay transactions and damage client relationships.",
			"Weak account security": "Email account compromises in real estate are increasingly common, leading to wire fraud and data exposure.",
			"Onboarding/offboarding gaps": "High agent turnover means credentials are frequently left active, creating unauthorized access risks.",
		},
		Solutions: map[string]string{
			"Secure cloud document workflows": "Centralized document management with version control, e-signatures, and secure sharing for transaction files.",
			"Mobile and office device management": "Unified management of agent smartphones, tablets, and office workstations for consistent security and performance.",
			"Identity protection and phishing controls": "Email security with advanced phishing protection to prevent wire fraud and business email compromise.",
			"Repeatable user lifecycle management": "Standardized onboarding and offboarding checklists with automated account provisioning and deactivation.",
			"Priority troubleshooting support": "Fast-track IT support prioritized for time-sensitive real estate transactions and deadlines.",
		},
		Keywords:    "real estate IT support, property management technology, wire fraud prevention, Orange County real estate IT",
		Description: "IT support for real estate and property management firms in Orange County. Mobile device management, wire fraud prevention, and transaction-ready technology.",
	},
}
